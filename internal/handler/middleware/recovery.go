package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/handler/response"
	"fitness-tracker/pkg/logger"
)

// Recovery перехватывает паники, логирует их со стеком и отвечает 500.
// В debug-режиме текст паники возвращается клиенту.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		log.Error("Паника перехвачена", map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprintf("%v", recovered),
			"request_id": c.GetString(response.RequestIDKey),
			"stack":      string(debug.Stack()),
		})

		var details interface{}
		if gin.Mode() == gin.DebugMode {
			details = fmt.Sprintf("%v", recovered)
		}
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", details)
	})
}
