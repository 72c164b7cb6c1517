package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitness-tracker/pkg/password"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.False(t, cfg.JWT.Enabled())
	require.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Contains(t, cfg.CORS.AllowedHeaders, "Authorization")
}

func TestLoad_MemoryDriverAndSlices(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	require.True(t, cfg.Database.AutoMigrate)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Host: "localhost", Port: "8080"},
			Database: DatabaseConfig{Host: "localhost", User: "postgres", DBName: "fitness_tracker"},
			Storage:  StorageConfig{Driver: StorageDriverPostgres},
			JWT:      JWTConfig{AccessTTL: time.Hour},
		}
	}

	adminHash, err := password.Hash("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, true},
		{"memory skips db checks", func(c *Config) {
			c.Storage.Driver = StorageDriverMemory
			c.Database = DatabaseConfig{}
		}, false},
		{"jwt without admin hash", func(c *Config) { c.JWT.Secret = "s" }, true},
		{"jwt with plain-text admin hash", func(c *Config) {
			c.JWT.Secret = "s"
			c.Auth.AdminPasswordHash = "s3cret"
		}, true},
		{"jwt with admin hash", func(c *Config) {
			c.JWT.Secret = "s"
			c.Auth.AdminPasswordHash = adminHash
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
