package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopping-lists/internal/handler"
	"github.com/iliyamo/shopping-lists/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /auth routes.  Register, login and logout are
// open and rate limited; /auth/me needs a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authn middleware.Authenticator, limiter echo.MiddlewareFunc) {
	g := e.Group("/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// logout works without a valid session so a stale cookie can be cleared
	g.POST("/logout", a.Logout)

	me := g.Group("/me", middleware.RequireSession(authn))
	me.GET("", a.Me)
	me.DELETE("", a.Deactivate)
}
