package main

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs

import (
	"log"
	"os"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/database"
	repo "fitness-tracker/internal/repository/interfaces"
	"fitness-tracker/internal/repository/memory"
	pgrepo "fitness-tracker/internal/repository/postgres"
	"fitness-tracker/internal/server"
	"fitness-tracker/pkg/logger"
)

//	@title						Fitness Tracker API
//	@version					1.0
//	@description				CRUD API пользователей и тренировок фитнес-трекера.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	appLog := logger.New(logger.ParseLevel(cfg.Log.Level), os.Stdout)
	appLog.Info("Fitness Tracker Server Starting", map[string]any{
		"env":     cfg.AppEnv,
		"address": cfg.Server.Address(),
		"storage": cfg.Storage.Driver,
	})

	var (
		db        *database.DB
		users     repo.UserRepository
		trainings repo.TrainingRepository
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		users, trainings = store.Users(), store.Trainings()
	default:
		db, err = database.NewConnection(&cfg.Database, cfg.AppEnv, appLog)
		if err != nil {
			appLog.Error("Ошибка подключения к базе данных", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer closeDB(db, appLog)

		if cfg.Database.AutoMigrate {
			if err := database.MigrateUp(db); err != nil {
				appLog.Error("Ошибка применения миграций", map[string]any{"error": err.Error()})
				closeDB(db, appLog)
				os.Exit(1)
			}
			appLog.Info("Миграции применены", nil)
		}

		users = pgrepo.NewUserRepository(db.DB)
		trainings = pgrepo.NewTrainingRepository(db.DB)
	}

	srv := server.NewServer(cfg, db, users, trainings, appLog)
	if err := srv.Start(); err != nil {
		appLog.Error("Сервер остановлен с ошибкой", map[string]any{"error": err.Error()})
		if db != nil {
			closeDB(db, appLog)
		}
		os.Exit(1)
	}
}

// closeDB закрывает подключение и логирует ошибку закрытия.
func closeDB(db *database.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Error("Ошибка закрытия подключения к базе данных", map[string]any{"error": err.Error()})
	}
}
