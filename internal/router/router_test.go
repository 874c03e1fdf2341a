package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/shopping-lists/internal/config"
	"github.com/iliyamo/shopping-lists/internal/handler"
	"github.com/iliyamo/shopping-lists/internal/repository"
	"github.com/iliyamo/shopping-lists/internal/service"
	"github.com/iliyamo/shopping-lists/internal/session"
)

type stubAuthn map[string]uint64

func (s stubAuthn) Authenticate(_ context.Context, token string) (uint64, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return 0, service.ErrUnauthorized
}

func newTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zap.NewNop()
	authn := stubAuthn{"tok-ana": 7}
	authSvc := service.NewAuthService(repository.NewUserRepo(db), session.NewMemoryStore(time.Hour), 4)
	listSvc := service.NewListService(repository.NewListRepo(db), repository.NewItemRepo(db), nil)
	passThrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(authSvc, config.SessionConfig{TTL: time.Hour}, log), authn, passThrough)
	RegisterLists(e, handler.NewListHandler(listSvc, log), authn)
	return e, mock
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesAreRegistered(t *testing.T) {
	e, _ := newTestServer(t)

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/logout",
		"GET /auth/me",
		"DELETE /auth/me",
		"GET /listas",
		"POST /listas",
		"PUT /listas/:id",
		"DELETE /listas/:id",
		"GET /listas/:id/items",
		"POST /listas/:id/items",
		"PATCH /listas/:id/items/:itemId",
		"PUT /items/:itemId/status",
	} {
		assert.True(t, got[want], "missing route %s", want)
	}
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	e, mock := newTestServer(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/listas"},
		{http.MethodDelete, "/listas/1"},
		{http.MethodGet, "/listas/1/items"},
		{http.MethodPut, "/items/1/status"},
		{http.MethodGet, "/auth/me"},
	} {
		rec := do(e, tc.method, tc.target, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.target)

		rec = do(e, tc.method, tc.target, "tok-unknown")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.target)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListsWithSession(t *testing.T) {
	e, mock := newTestServer(t)

	mock.ExpectQuery(`FROM listas l LEFT JOIN items`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "user_id", "fecha_creacion", "total", "done"}).
			AddRow(1, "Compras", 7, time.Now(), 2, 1))

	rec := do(e, http.MethodGet, "/listas", "tok-ana")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre":"Compras"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthIsPublic(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
