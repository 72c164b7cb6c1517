package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fitness-tracker/internal/config"
)

// RoleOperator: роль оператора, которому разрешены изменяющие запросы.
const RoleOperator = "operator"

// Claims описывает JWT-пейлоад access-токена оператора.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service инкапсулирует операции по генерации и валидации JWT-токенов.
type Service interface {
	GenerateAccessToken(subject string) (string, error)
	ParseAccessToken(tokenString string) (*Claims, error)
	AccessTTL() time.Duration
}

type service struct {
	cfg *config.JWTConfig
	now func() time.Time
}

// NewService создаёт JWT-сервис на основе конфигурации.
func NewService(cfg *config.JWTConfig) Service {
	return &service{cfg: cfg, now: time.Now}
}

// GenerateAccessToken генерирует короткоживущий access-токен оператора.
func (s *service) GenerateAccessToken(subject string) (string, error) {
	now := s.now().UTC()
	claims := &Claims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ParseAccessToken парсит и валидирует access-токен.
func (s *service) ParseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Убеждаемся, что метод подписи ожидаемый
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.Issuer != "" && s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}

	return claims, nil
}

// AccessTTL возвращает время жизни access-токена.
func (s *service) AccessTTL() time.Duration {
	return s.cfg.AccessTTL
}
