package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает health check запросы
type Handler struct {
	db      Pinger
	storage string
	appEnv  string
}

// NewHandler создает новый экземпляр health handler.
// db может быть nil, если приложение работает без базы данных.
func NewHandler(db Pinger, storage, appEnv string) *Handler {
	return &Handler{
		db:      db,
		storage: storage,
		appEnv:  appEnv,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Message string `json:"message,omitempty"`
}

// Health проверяет работоспособность сервера
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Storage: h.storage,
		Message: "Сервер работает",
	})
}

// HealthDB проверяет подключение к базе данных
func (h *Handler) HealthDB(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Storage: h.storage,
			Message: "База данных не используется",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		// В production детали ошибки не раскрываются
		errorMessage := "База данных недоступна"
		if h.appEnv != "production" {
			errorMessage = "База данных недоступна: " + err.Error()
		}

		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Storage: h.storage,
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Storage: h.storage,
		Message: "База данных доступна",
	})
}
