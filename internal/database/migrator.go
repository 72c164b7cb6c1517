package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver

	"fitness-tracker/internal/database/migrations"
)

var (
	// ErrNoChange возвращается, когда нет миграций для применения.
	ErrNoChange = errors.New("no change")

	// ErrDirtyState возвращается, когда миграции находятся в "грязном" состоянии.
	// Это означает, что миграция была прервана и требует ручного вмешательства.
	ErrDirtyState = errors.New("database is in dirty state")
)

// Migrator управляет версиями схемы БД через golang-migrate
// и встроенные в бинарник SQL-файлы.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator создает мигратор поверх существующего подключения.
// Мигратор не владеет соединением: закрытие DB остаётся за вызывающим.
func NewMigrator(db *DB) (*Migrator, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	return newMigrator(sqlDB)
}

// NewMigratorFromDSN создает мигратор с собственным подключением по DSN.
// Используется в интеграционных тестах и утилитах, которым не нужен GORM.
func NewMigratorFromDSN(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия подключения: %w", err)
	}

	m, err := newMigrator(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func newMigrator(db *sql.DB) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания драйвера PostgreSQL: %w", err)
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания источника миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания экземпляра migrate: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Close закрывает источник миграций и драйвер БД.
func (m *Migrator) Close() error {
	if m.m == nil {
		return nil
	}
	sourceErr, dbErr := m.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("ошибка закрытия источника миграций: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("ошибка закрытия подключения к БД: %w", dbErr)
	}
	return nil
}

// Up применяет все доступные миграции.
// Возвращает ErrNoChange, если нет миграций для применения.
func (m *Migrator) Up() error {
	return translate(m.m.Up(), "ошибка применения миграций")
}

// Down откатывает последнюю примененную миграцию.
func (m *Migrator) Down() error {
	return translate(m.m.Steps(-1), "ошибка отката миграции")
}

// Steps применяет (n > 0) или откатывает (n < 0) N миграций.
func (m *Migrator) Steps(n int) error {
	return translate(m.m.Steps(n), fmt.Sprintf("ошибка применения %d миграций", n))
}

// Version возвращает текущую версию и флаг "грязного" состояния.
// Если миграции не применялись, версия будет 0 и dirty = false.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ошибка получения версии: %w", err)
	}
	return version, dirty, nil
}

// Force устанавливает версию миграции без применения миграций.
// Используется для восстановления после "грязного" состояния.
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("ошибка принудительной установки версии %d: %w", version, err)
	}
	return nil
}

// CheckDirty возвращает ErrDirtyState, если требуется ручное вмешательство.
func (m *Migrator) CheckDirty() error {
	_, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyState
	}
	return nil
}

// MigrateUp применяет все миграции поверх подключения db, считая ErrNoChange успехом.
// Используется сервером при DB_AUTO_MIGRATE=true.
// Мигратор не закрывается: драйвер WithInstance закрыл бы и общий *sql.DB.
func MigrateUp(db *DB) error {
	migrator, err := NewMigrator(db)
	if err != nil {
		return err
	}
	if err := migrator.CheckDirty(); err != nil {
		return err
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, ErrNoChange) {
		return err
	}
	return nil
}

func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return ErrNoChange
	}
	return fmt.Errorf("%s: %w", msg, err)
}
