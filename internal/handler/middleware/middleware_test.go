package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/handler/response"
	jwtsvc "fitness-tracker/pkg/jwt"
	"fitness-tracker/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(response.RequestIDKey)) })

	w := perform(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, "abc-123", w.Body.String())

	w = perform(r, http.MethodGet, "/", nil)
	require.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestAuthAndRequireRole(t *testing.T) {
	jwt := jwtsvc.NewService(&config.JWTConfig{Secret: "s", Issuer: "fitness-tracker", AccessTTL: time.Minute})
	token, err := jwt.GenerateAccessToken("admin")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/guarded", Auth(jwt, logger.Discard()), RequireRole(jwtsvc.RoleOperator), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubjectKey))
	})

	w := perform(r, http.MethodPost, "/guarded", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/guarded", map[string]string{"Authorization": "Token xyz"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/guarded", map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/guarded", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "admin", w.Body.String())
}

func TestRequireRole_Forbidden(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.Set(ContextRoleKey, "viewer") }, RequireRole(jwtsvc.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.Discard()))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal_error")
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         time.Hour,
	}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://app.example.com"})
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), "x-request-id")
}
