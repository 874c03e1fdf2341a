package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/shopping-lists/internal/config"
    "github.com/iliyamo/shopping-lists/internal/middleware"
    "github.com/iliyamo/shopping-lists/internal/model"
    "github.com/iliyamo/shopping-lists/internal/service"
)

// AuthAPI is the account and session logic behind the auth endpoints.  It
// is satisfied by *service.AuthService.
type AuthAPI interface {
    Register(ctx context.Context, in service.RegisterInput) (uint64, error)
    Login(ctx context.Context, username, password any) (model.User, string, error)
    Logout(ctx context.Context, token string) error
    Me(ctx context.Context, userID uint64) (model.User, error)
    Deactivate(ctx context.Context, userID uint64, token string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Auth    AuthAPI
    Session config.SessionConfig
    Log     *zap.Logger
}

func NewAuthHandler(auth AuthAPI, sess config.SessionConfig, log *zap.Logger) *AuthHandler {
    return &AuthHandler{Auth: auth, Session: sess, Log: log}
}

type loginReq struct {
    Username any `json:"username"`
    Password any `json:"password"`
}

type loginResp struct {
    User    userResp `json:"user"`
    Session string   `json:"session"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
    var req service.RegisterInput
    if err := bindBody(c, &req); err != nil {
        return writeError(c, h.Log, err)
    }
    id, err := h.Auth.Register(c.Request().Context(), req)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "mensaje": "Usuario registrado correctamente"})
}

// Login handles POST /auth/login.  The token is returned in the body and
// as an HttpOnly cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := bindBody(c, &req); err != nil {
        return writeError(c, h.Log, err)
    }
    u, token, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    c.SetCookie(h.cookie(token, h.Session.TTL))
    return c.JSON(http.StatusOK, loginResp{User: toUserResp(u), Session: token})
}

// Logout handles POST /auth/logout.  It succeeds with or without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
    if err := h.Auth.Logout(c.Request().Context(), middleware.TokenFromRequest(c)); err != nil {
        return writeError(c, h.Log, err)
    }
    c.SetCookie(h.cookie("", -1))
    return c.JSON(http.StatusOK, echo.Map{"mensaje": "Sesión cerrada"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    u, err := h.Auth.Me(c.Request().Context(), uid)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, toUserResp(u))
}

// Deactivate handles DELETE /auth/me.  The account is kept but can no
// longer log in.
func (h *AuthHandler) Deactivate(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    if err := h.Auth.Deactivate(c.Request().Context(), uid, getToken(c)); err != nil {
        return writeError(c, h.Log, err)
    }
    c.SetCookie(h.cookie("", -1))
    return c.JSON(http.StatusOK, echo.Map{"mensaje": "Cuenta desactivada"})
}

// cookie builds the session cookie.  A negative ttl deletes it.
func (h *AuthHandler) cookie(value string, ttl time.Duration) *http.Cookie {
    ck := &http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    value,
        Path:     "/",
        HttpOnly: true,
        Secure:   h.Session.CookieSecure,
        SameSite: http.SameSiteLaxMode,
    }
    if ttl < 0 {
        ck.MaxAge = -1
    } else {
        ck.MaxAge = int(ttl / time.Second)
    }
    return ck
}
