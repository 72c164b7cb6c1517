package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/database"
	"fitness-tracker/pkg/logger"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Применить все доступные миграции (по умолчанию)")
		down    = flag.Bool("down", false, "Откатить последнюю миграцию")
		steps   = flag.Int("steps", 0, "Применить/откатить N миграций (положительное число - вверх, отрицательное - вниз)")
		version = flag.Bool("version", false, "Показать текущую версию миграции")
		force   = flag.Int("force", -1, "Принудительно установить версию (после прерванной миграции)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Использование: %s [опции]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Опции:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nПримеры:\n")
		fmt.Fprintf(os.Stderr, "  %s              # Применить все миграции\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -down        # Откатить последнюю миграцию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -steps -1    # Откатить 1 миграцию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -force 2     # Снять флаг dirty, установив версию 2\n", os.Args[0])
	}
	flag.Parse()

	actions := 0
	for _, set := range []bool{*up, *down, *steps != 0, *version, *force >= 0} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		log.Fatal("Ошибка: можно указать только одно действие за раз")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatalf("Миграции применимы только к STORAGE_DRIVER=postgres (сейчас %q)", cfg.Storage.Driver)
	}

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, logger.New(logger.ParseLevel(cfg.Log.Level), os.Stderr))
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения к базе данных: %v", err)
		}
	}()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}

	switch {
	case *version:
		printVersion(migrator)
	case *force >= 0:
		run("Принудительная установка версии", migrator.Force(*force))
	case *down:
		run("Откат последней миграции", migrator.Down())
	case *steps != 0:
		run(fmt.Sprintf("Применение %d миграций", *steps), migrator.Steps(*steps))
	default:
		run("Применение всех миграций", migrator.Up())
	}
}

// run печатает результат действия; ErrNoChange считается успехом.
func run(action string, err error) {
	switch {
	case err == nil:
		log.Printf("%s: готово", action)
	case errors.Is(err, database.ErrNoChange):
		log.Printf("%s: изменений нет, база данных уже актуальна", action)
	default:
		log.Fatalf("%s: %v", action, err)
	}
}

// printVersion показывает текущую версию миграции
func printVersion(migrator *database.Migrator) {
	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Ошибка получения версии: %v", err)
	}

	switch {
	case version == 0:
		log.Println("Версия: нет примененных миграций")
	case dirty:
		log.Printf("Версия: %d (ГРЯЗНОЕ СОСТОЯНИЕ - требуется -force)", version)
		os.Exit(1)
	default:
		log.Printf("Версия: %d", version)
	}
}
