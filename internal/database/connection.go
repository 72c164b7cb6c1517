package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fitness-tracker/internal/config"
	"fitness-tracker/pkg/logger"
)

// Константы для значений по умолчанию пула соединений
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
)

// DB представляет подключение к базе данных
type DB struct {
	*gorm.DB
	log logger.Logger
}

// NewConnection создает новое подключение к базе данных.
// Принимает конфигурацию базы данных и окружение приложения для настройки логирования GORM.
//
// Пример использования:
//
//	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func NewConnection(cfg *config.DatabaseConfig, appEnv string, log logger.Logger) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация базы данных не может быть nil")
	}
	if log == nil {
		log = logger.Default()
	}

	log.Info("инициализация подключения к базе данных", map[string]any{
		"host": cfg.Host, "port": cfg.Port, "db": cfg.DBName,
	})

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLoggerFor(appEnv),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	// Получаем sql.DB для настройки пула соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	// Используем значения из конфига, если они заданы, иначе значения по умолчанию
	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConns))
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConns))
	sqlDB.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, defaultConnMaxLifetime))
	sqlDB.SetConnMaxIdleTime(orDefault(cfg.ConnMaxIdleTime, defaultConnMaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	log.Info("подключение к базе данных установлено", nil)

	return &DB{DB: db, log: log}, nil
}

// gormLoggerFor выбирает уровень логирования GORM в зависимости от окружения.
func gormLoggerFor(appEnv string) gormlogger.Interface {
	switch strings.ToLower(appEnv) {
	case "development":
		return gormlogger.Default.LogMode(gormlogger.Info)
	case "production":
		return gormlogger.Default.LogMode(gormlogger.Error)
	default:
		return gormlogger.Default.LogMode(gormlogger.Warn)
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}

// Close закрывает подключение к базе данных.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB для закрытия: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к базе данных: %w", err)
	}

	db.log.Info("подключение к базе данных закрыто", nil)
	return nil
}

// Ping проверяет доступность базы данных с учётом контекста.
// Используется для health checks.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ошибка ping базы данных: %w", err)
	}

	return nil
}
