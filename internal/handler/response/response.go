package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/usecase/validation"
	"fitness-tracker/pkg/logger"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Envelope: обёртка ответа с ошибкой.
type Envelope struct {
	Error ErrorBody `json:"error"`
}

// Error отправляет JSON-ответ с ошибкой в едином формате и прерывает цепочку обработчиков.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, Envelope{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ServiceError отображает ошибку сервисного слоя на HTTP-ответ:
// ErrInvalidArgument → 400, ErrNotFound → 404, остальное → 500.
func ServiceError(c *gin.Context, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidArgument):
		Error(c, http.StatusBadRequest, "invalid_argument", "Некорректные данные запроса", err.Error())
	case errors.Is(err, validation.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", "Ресурс не найден", err.Error())
	default:
		log.Error("Внутренняя ошибка", map[string]any{"op": op, "error": err.Error(), "request_id": c.GetString(RequestIDKey)})
		Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
	}
}

// NotFound отправляет 404 для мягко ненайденной сущности.
func NotFound(c *gin.Context, code, message string) {
	Error(c, http.StatusNotFound, code, message, nil)
}

// BadRequest отправляет 400 для некорректного запроса.
func BadRequest(c *gin.Context, message string, details interface{}) {
	Error(c, http.StatusBadRequest, "invalid_request", message, details)
}

// RequestIDKey: ключ gin-контекста с идентификатором запроса.
const RequestIDKey = "requestID"
