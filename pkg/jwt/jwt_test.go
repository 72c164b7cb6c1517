package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"fitness-tracker/internal/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "s3cret", Issuer: "fitness-tracker", AccessTTL: 15 * time.Minute}
}

func TestGenerateAndParse(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, RoleOperator, claims.Role)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, 15*time.Minute, svc.AccessTTL())
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewService(testConfig()).GenerateAccessToken("admin")
	require.NoError(t, err)

	other := testConfig()
	other.Secret = "different"
	_, err = NewService(other).ParseAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParse_Expired(t *testing.T) {
	svc := &service{cfg: testConfig(), now: func() time.Time { return time.Now().Add(-time.Hour) }}
	token, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = NewService(testConfig()).ParseAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "someone-else"
	token, err := NewService(cfg).GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = NewService(testConfig()).ParseAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
