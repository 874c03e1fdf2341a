package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/shopping-lists/internal/middleware"
    "github.com/iliyamo/shopping-lists/internal/repository"
)

var errBadBody = errors.New("Datos JSON requeridos")

// getUserID extracts the user id stored by middleware.RequireSession.
func getUserID(c echo.Context) (uint64, error) {
    if v, ok := c.Get(middleware.ContextUserID).(uint64); ok && v != 0 {
        return v, nil
    }
    return 0, errors.New("invalid user_id in context")
}

// getToken returns the session token of the current request.
func getToken(c echo.Context) string {
    if v, ok := c.Get(middleware.ContextToken).(string); ok {
        return v
    }
    return middleware.TokenFromRequest(c)
}

// pathID parses a positive numeric path parameter.  Anything else is
// reported as not found, like a missing row.
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, repository.ErrNotFound
    }
    return id, nil
}

// bindBody decodes a JSON object body.  Path and query parameters are not
// mixed in.  An empty or malformed body yields errBadBody.
func bindBody(c echo.Context, dst any) error {
    if c.Request().ContentLength == 0 {
        return errBadBody
    }
    if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
        return errBadBody
    }
    return nil
}

func bindMap(c echo.Context) (map[string]any, error) {
    var m map[string]any
    if err := bindBody(c, &m); err != nil {
        return nil, err
    }
    if m == nil {
        return nil, errBadBody
    }
    return m, nil
}
