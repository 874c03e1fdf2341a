package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/shopping-lists/internal/repository"
    "github.com/iliyamo/shopping-lists/internal/service"
    "github.com/iliyamo/shopping-lists/internal/session"
    "github.com/iliyamo/shopping-lists/internal/validation"
)

const (
    msgValidation = "Errores de validación"
    msgNotFound   = "Recurso no encontrado"
    msgDuplicate  = "El nombre de usuario o el email ya están registrados"
    msgInternal   = "Error interno del servidor"
)

// writeError maps every error a handler can see to its HTTP response.
// Client errors are returned as-is; store failures are logged and answered
// without their text.
func writeError(c echo.Context, log *zap.Logger, err error) error {
    var (
        verrs validation.Errors
        ferr  *validation.FieldError
    )
    switch {
    case errors.As(err, &verrs):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msgValidation, "details": verrs.Reasons()})
    case errors.As(err, &ferr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msgValidation, "details": []string{ferr.Reason}})
    case errors.Is(err, validation.ErrNothingToUpdate), errors.Is(err, errBadBody):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, service.ErrInvalidCredentials):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrInvalidCredentials.Error()})
    case errors.Is(err, service.ErrUnauthorized), errors.Is(err, session.ErrNotFound):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrUnauthorized.Error()})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
    case errors.Is(err, service.ErrUsernameTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrUsernameTaken.Error()})
    case errors.Is(err, service.ErrEmailTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrEmailTaken.Error()})
    case errors.Is(err, repository.ErrDuplicate):
        return c.JSON(http.StatusConflict, echo.Map{"error": msgDuplicate})
    case errors.Is(err, service.ErrTransient):
        log.Warn("transient store failure", zap.String("path", c.Path()), zap.Error(err))
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": service.ErrTransient.Error()})
    default:
        log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
    }
}
