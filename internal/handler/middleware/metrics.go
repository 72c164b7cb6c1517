package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/observability"
)

// Metrics учитывает запросы в Prometheus по шаблону маршрута, а не по фактическому пути.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
