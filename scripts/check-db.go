//go:build ignore

// Скрипт проверки готовности базы данных: подключение, версия миграций, наличие таблиц.
// Запуск: go run scripts/check-db.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/database"
	"fitness-tracker/pkg/logger"
)

// fileExists проверяет существование файла
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func main() {
	log.Println("Проверка подключения к базе данных...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatalf("STORAGE_DRIVER=%s: проверять нечего, база данных не используется", cfg.Storage.Driver)
	}

	// Вне Docker хост "postgres" не резолвится
	isInDocker := os.Getenv("container") != "" || fileExists("/.dockerenv")
	if cfg.Database.Host == "postgres" && !isInDocker {
		log.Println("Обнаружен хост 'postgres' вне Docker, используется 'localhost'")
		cfg.Database.Host = "localhost"
	}

	log.Printf("Параметры подключения: host=%s port=%s user=%s db=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.DBName, cfg.Database.SSLMode)

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, logger.New(logger.LevelWarn, os.Stderr))
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		log.Fatalf("❌ Ошибка проверки подключения (Ping): %v", err)
	}
	log.Println("✅ Ping прошёл успешно")

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("❌ Ошибка создания мигратора: %v", err)
	}
	version, dirty, err := migrator.Version()
	switch {
	case err != nil:
		log.Fatalf("❌ Ошибка получения версии миграций: %v", err)
	case dirty:
		log.Fatalf("❌ Миграция %d в грязном состоянии, выполните go run ./cmd/migrate -force %d", version, version)
	case version == 0:
		log.Fatalf("❌ Миграции не применены, выполните go run ./cmd/migrate")
	}
	log.Printf("✅ Версия схемы: %d", version)

	for _, table := range []string{"users", "trainings"} {
		if !db.Migrator().HasTable(table) {
			log.Fatalf("❌ Таблица %s отсутствует", table)
		}
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			log.Fatalf("❌ Ошибка запроса к таблице %s: %v", table, err)
		}
		log.Printf("✅ Таблица %s: %d записей", table, count)
	}

	fmt.Println("\n🎉 Все проверки пройдены! База данных готова к работе.")
}
