package middleware

// identity.go holds helpers shared by the logging and rate limiting
// middleware to describe who is calling.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID returns the authenticated user id set by RequireSession as a
// string, or "anon" before authentication.
func userID(c echo.Context) string {
    if v, ok := c.Get(ContextUserID).(uint64); ok && v != 0 {
        return strconv.FormatUint(v, 10)
    }
    return "anon"
}
