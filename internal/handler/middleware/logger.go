package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/handler/response"
	"fitness-tracker/pkg/logger"
)

// Logger логирует каждый HTTP-запрос структурированной записью.
// Уровень записи зависит от кода ответа.
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(response.RequestIDKey),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		switch {
		case status >= 500:
			log.Error("HTTP запрос", fields)
		case status >= 400:
			log.Warn("HTTP запрос", fields)
		default:
			log.Info("HTTP запрос", fields)
		}
	}
}
