package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitness-tracker/internal/handler/response"
)

// RequestIDHeader: заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// RequestID берёт идентификатор запроса из заголовка или генерирует новый UUID
// и возвращает его в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
