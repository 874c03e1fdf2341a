// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// service and handler packages to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a list or item does not exist or belongs
// to someone else.  Both cases share one value so callers cannot learn
// whether another user's resource exists.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key, such as a
// username or email that is already registered.
var ErrDuplicate = errors.New("duplicate entry")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// IsTransient reports whether err is a timeout or connectivity failure that
// is safe to retry.  Dial and socket errors from a server that is down or
// unreachable count as connectivity failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &ne)
}
