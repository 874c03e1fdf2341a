package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"
)

// Recover turns a handler panic into a 500 response and logs it, with its
// stack, through zap.  The panic value never reaches the client.
func Recover(log *zap.Logger) echo.MiddlewareFunc {
    return echomw.RecoverWithConfig(echomw.RecoverConfig{
        LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
            log.Error("panic recovered",
                zap.String("method", c.Request().Method),
                zap.String("path", c.Path()),
                zap.Error(err),
                zap.ByteString("stack", stack))
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error interno del servidor"})
        },
    })
}
