package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/health/db", h.HealthDB)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := serve(NewHandler(nil, "memory", "development"), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"storage":"memory"`)
}

func TestHealthDB(t *testing.T) {
	w := serve(NewHandler(nil, "memory", "development"), "/health/db")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	ok := pingerFunc(func(context.Context) error { return nil })
	w = serve(NewHandler(ok, "postgres", "development"), "/health/db")
	require.Equal(t, http.StatusOK, w.Code)

	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	w = serve(NewHandler(down, "postgres", "development"), "/health/db")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "connection refused")

	w = serve(NewHandler(down, "postgres", "production"), "/health/db")
	require.NotContains(t, w.Body.String(), "connection refused")
}
