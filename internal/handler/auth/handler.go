package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/handler/response"
	jwtsvc "fitness-tracker/pkg/jwt"
	"fitness-tracker/pkg/logger"
	"fitness-tracker/pkg/password"
)

// Handler выпускает токены оператору API.
type Handler struct {
	creds *config.AuthConfig
	jwt   jwtsvc.Service
	log   logger.Logger
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(creds *config.AuthConfig, jwt jwtsvc.Service, log logger.Logger) *Handler {
	return &Handler{creds: creds, jwt: jwt, log: log}
}

// Token проверяет учётные данные оператора и выдаёт access-токен.
//
//	@Summary	Выпустить токен оператора
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		TokenRequest	true	"Учётные данные"
//	@Success	200		{object}	TokenResponse
//	@Failure	401		{object}	response.Envelope
//	@Router		/auth/token [post]
func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Некорректное тело запроса", err.Error())
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.creds.AdminUsername)) == 1
	// Пароль сверяется независимо от результата проверки логина
	passwordErr := password.Verify(h.creds.AdminPasswordHash, req.Password)
	if !usernameOK || passwordErr != nil {
		h.log.Warn("Неудачная попытка получения токена", map[string]any{"username": req.Username, "ip": c.ClientIP()})
		response.Error(c, http.StatusUnauthorized, "invalid_credentials", "Неверное имя пользователя или пароль", nil)
		return
	}

	token, err := h.jwt.GenerateAccessToken(req.Username)
	if err != nil {
		h.log.Error("Ошибка генерации токена", map[string]any{"error": err.Error()})
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwt.AccessTTL().Seconds()),
	})
}
