package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/handler/response"
	jwtsvc "fitness-tracker/pkg/jwt"
	"fitness-tracker/pkg/logger"
)

const (
	ContextSubjectKey = "subject"
	ContextRoleKey    = "role"
)

// Auth возвращает middleware для аутентификации по JWT access-токену.
// Ожидает заголовок Authorization: Bearer <token>.
func Auth(jwtService jwtsvc.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("missing Authorization header", map[string]any{"path": c.Request.URL.Path})
			response.Error(c, http.StatusUnauthorized, "missing_authorization_header", "Отсутствует заголовок Authorization", nil)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			log.Warn("invalid Authorization header format", map[string]any{"path": c.Request.URL.Path})
			response.Error(c, http.StatusUnauthorized, "invalid_authorization_header", "Некорректный формат заголовка Authorization", nil)
			return
		}

		claims, err := jwtService.ParseAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Warn("invalid access token", map[string]any{"error": err.Error()})
			response.Error(c, http.StatusUnauthorized, "invalid_token", "Недействительный access-токен", nil)
			return
		}

		// Сохраняем данные оператора в контексте Gin
		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole проверяет, что роль из токена входит в список разрешённых.
// Используется поверх Auth.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		if r == "" {
			continue
		}
		allowed[strings.ToLower(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(c.GetString(ContextRoleKey))
		if _, ok := allowed[role]; !ok {
			response.Error(c, http.StatusForbidden, "forbidden", "Недостаточно прав для доступа к ресурсу", nil)
			return
		}
		c.Next()
	}
}
