// Package session maps opaque session tokens to authenticated user ids.
// Three backings are provided: an in-process map, Redis, and signed HS256
// tokens with a revocation list.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Lookup for a token that is unknown, expired or
// deleted.
var ErrNotFound = errors.New("session not found or expired")

// ErrUnavailable tags failures of a shared session backing, such as Redis
// being down.  Callers treat it as transient.
var ErrUnavailable = errors.New("session store unavailable")

// Store is the session contract used by the auth service and middleware.
type Store interface {
	Create(ctx context.Context, userID uint64) (string, error)
	Lookup(ctx context.Context, token string) (uint64, error)
	Delete(ctx context.Context, token string) error
}

// Backend names accepted by SESSION_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendJWT    = "jwt"
)

// ValidateBackend reports an error for an unknown backend name.
func ValidateBackend(name string) error {
	switch name {
	case BackendMemory, BackendRedis, BackendJWT:
		return nil
	}
	return fmt.Errorf("unknown session backend %q", name)
}

const defaultTTL = 24 * time.Hour

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultTTL
	}
	return ttl
}
