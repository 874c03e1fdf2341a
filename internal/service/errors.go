// Package service holds the business logic between HTTP handlers and the
// repositories: authentication, sessions and list/item orchestration.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/shopping-lists/internal/repository"
	"github.com/iliyamo/shopping-lists/internal/session"
)

var (
	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = errors.New("No autorizado")
	// ErrInvalidCredentials is the single login failure.  It never says
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectos")
	// ErrUsernameTaken and ErrEmailTaken are registration conflicts.
	ErrUsernameTaken = errors.New("El nombre de usuario ya está en uso")
	ErrEmailTaken    = errors.New("El email ya está registrado")
	// ErrTransient wraps store timeouts and connection failures.  The unit
	// of work has been rolled back and the request is safe to retry.
	ErrTransient = errors.New("Servicio no disponible, intente de nuevo")
)

// DefaultStoreTimeout bounds every store call made by a service.
const DefaultStoreTimeout = 5 * time.Second

// storeErr annotates a repository or session error with the operation name
// and tags timeouts and connectivity failures as ErrTransient.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if repository.IsTransient(err) || errors.Is(err, session.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}
