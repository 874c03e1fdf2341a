package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shopping-lists/internal/service"
)

// SessionCookie is the HttpOnly cookie that carries the session token.
const SessionCookie = "session"

// Context keys set by RequireSession.
const (
    ContextUserID = "user_id"
    ContextToken  = "session_token"
)

// Authenticator resolves a session token to an active user id.  It is
// satisfied by *service.AuthService.
type Authenticator interface {
    Authenticate(ctx context.Context, token string) (uint64, error)
}

// TokenFromRequest returns the session token from the Authorization bearer
// header, falling back to the session cookie.  It returns "" when neither
// is present.
func TokenFromRequest(c echo.Context) string {
    if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    }
    if ck, err := c.Cookie(SessionCookie); err == nil {
        return ck.Value
    }
    return ""
}

// RequireSession rejects requests without a valid session with 401 and
// otherwise stores the user id (uint64) and the raw token in the context
// for handlers to read back.
func RequireSession(auth Authenticator) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := TokenFromRequest(c)
            if token == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrUnauthorized.Error()})
            }
            uid, err := auth.Authenticate(c.Request().Context(), token)
            switch {
            case err == nil:
            case errors.Is(err, service.ErrTransient):
                c.Logger().Errorf("session lookup: %v", err)
                return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": service.ErrTransient.Error()})
            case errors.Is(err, service.ErrUnauthorized):
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrUnauthorized.Error()})
            default:
                c.Logger().Errorf("session lookup: %v", err)
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error interno del servidor"})
            }
            c.Set(ContextUserID, uid)
            c.Set(ContextToken, token)
            return next(c)
        }
    }
}
