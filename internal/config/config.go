package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fitness-tracker/pkg/password"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config хранит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Swagger  SwaggerConfig
	AppEnv   string // Окружение приложения: development, production, etc.
}

// ServerConfig хранит конфигурацию сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig хранит конфигурацию базы данных
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int           // Максимальное количество открытых соединений
	MaxIdleConns    int           // Максимальное количество неактивных соединений
	ConnMaxLifetime time.Duration // Максимальное время жизни соединения
	ConnMaxIdleTime time.Duration // Максимальное время простоя соединения
	AutoMigrate     bool          // Применять миграции при старте сервера
}

// StorageConfig определяет, какой шлюз хранения использовать.
type StorageConfig struct {
	Driver string // postgres | memory
}

// JWTConfig хранит параметры выпуска операторских токенов.
// Пустой Secret отключает проверку токенов на изменяющих маршрутах.
type JWTConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
}

// Enabled сообщает, включена ли аутентификация.
func (j *JWTConfig) Enabled() bool {
	return j.Secret != ""
}

// AuthConfig хранит учётные данные оператора API.
type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string // bcrypt-хэш
}

// CORSConfig хранит настройки CORS
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// LogConfig хранит настройки логирования
type LogConfig struct {
	Level string
}

// MetricsConfig хранит настройки экспорта метрик Prometheus
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// SwaggerConfig управляет публикацией документации API
type SwaggerConfig struct {
	Enabled bool
}

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Address возвращает адрес сервера (host:port)
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (если существует)
	// В production переменные окружения должны быть установлены напрямую
	_ = godotenv.Load()

	cfg := &Config{}

	// Загружаем конфигурацию сервера
	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")

	// Загружаем конфигурацию базы данных
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.DBName = getEnv("DB_NAME", "fitness_tracker")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", false)

	// Загружаем настройки пула соединений
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	cfg.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.Database.ConnMaxIdleTime = getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute)

	cfg.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres))

	// JWT и учётные данные оператора
	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "fitness-tracker")
	cfg.JWT.AccessTTL = getEnvAsDuration("JWT_ACCESS_TTL", time.Hour)
	cfg.Auth.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.Auth.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")

	// CORS
	cfg.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil)
	cfg.CORS.AllowedMethods = getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	cfg.CORS.ExposedHeaders = getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", false)
	cfg.CORS.MaxAge = getEnvAsDuration("CORS_MAX_AGE", 12*time.Hour)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", true)
	cfg.Metrics.Path = getEnv("METRICS_PATH", "/metrics")
	cfg.Swagger.Enabled = getEnvAsBool("SWAGGER_ENABLED", true)

	// Загружаем окружение приложения
	cfg.AppEnv = getEnv("APP_ENV", "development")

	// Валидируем конфигурацию
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("SERVER_HOST не может быть пустым")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT не может быть пустым")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST не может быть пустым")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER не может быть пустым")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("DB_NAME не может быть пустым")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER: %q", c.Storage.Driver)
	}
	if c.JWT.Enabled() {
		if c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH обязателен, если задан JWT_SECRET")
		}
		if err := password.ValidateHash(c.Auth.AdminPasswordHash); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
	}
	if c.JWT.Enabled() && c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL должен быть положительным")
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration получает переменную окружения как time.Duration или возвращает значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvAsSlice разбирает список значений, разделённых запятыми.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
