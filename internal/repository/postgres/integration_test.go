//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fitness-tracker/internal/database"
	trainingdomain "fitness-tracker/internal/domain/training"
	userdomain "fitness-tracker/internal/domain/user"
	repo "fitness-tracker/internal/repository/interfaces"
)

// startPostgres поднимает PostgreSQL в контейнере и применяет миграции.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgrescontainer.WithDatabase("fitness_tracker"),
		postgrescontainer.WithUsername("fitness"),
		postgrescontainer.WithPassword("fitness"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrator, err := database.NewMigratorFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIntegration_Repositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	trainings := NewTrainingRepository(db)

	ann := userdomain.NewUser("Ann", "Lee", date(1990, 5, 1), "ann@Example.com")
	bob := userdomain.NewUser("Bob", "Stone", date(1985, 2, 10), "bob@test.org")
	cid := userdomain.NewUser("Cid", "Arc", date(2001, 9, 30), "cid@example.com")
	for _, u := range []*userdomain.User{ann, bob, cid} {
		require.NoError(t, users.Create(ctx, u))
		require.NotZero(t, u.ID)
	}

	t.Run("unique email", func(t *testing.T) {
		dup := userdomain.NewUser("Ann", "Other", date(1991, 1, 1), "ann@Example.com")
		require.ErrorIs(t, users.Create(ctx, dup), repo.ErrEmailExists)

		clash := *bob
		clash.Email = ann.Email
		require.ErrorIs(t, users.Update(ctx, &clash), repo.ErrEmailExists)
	})

	t.Run("email lookups", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "ann@Example.com")
		require.NoError(t, err)
		require.Equal(t, ann.ID, got.ID)

		found, err := users.SearchByEmail(ctx, "EXAMPLE")
		require.NoError(t, err)
		require.Len(t, found, 2)
		require.Equal(t, ann.ID, found[0].ID)
		require.Equal(t, cid.ID, found[1].ID)
	})

	t.Run("born before", func(t *testing.T) {
		older, err := users.ListBornBefore(ctx, date(1990, 5, 1))
		require.NoError(t, err)
		require.Len(t, older, 1)
		require.Equal(t, bob.ID, older[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := users.ListPage(ctx, repo.PageQuery{Page: 0, Size: 2, SortField: userdomain.SortByBirthDate, Ascending: true})
		require.NoError(t, err)
		require.Len(t, page, 2)
		require.Equal(t, bob.ID, page[0].ID)
		require.Equal(t, ann.ID, page[1].ID)

		page, err = users.ListPage(ctx, repo.PageQuery{Page: 1, Size: 2, SortField: userdomain.SortByBirthDate, Ascending: true})
		require.NoError(t, err)
		require.Len(t, page, 1)
		require.Equal(t, cid.ID, page[0].ID)

		page, err = users.ListPage(ctx, repo.PageQuery{Page: 5, Size: 2, SortField: userdomain.SortByID, Ascending: true})
		require.NoError(t, err)
		require.Empty(t, page)
	})

	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	run := &trainingdomain.Training{
		UserID: ann.ID, StartTime: start, EndTime: start.Add(time.Hour),
		ActivityType: trainingdomain.ActivityRunning, Distance: 10, AverageSpeed: 10,
	}
	swim := &trainingdomain.Training{
		UserID: bob.ID, StartTime: start.Add(24 * time.Hour), EndTime: start.Add(25 * time.Hour),
		ActivityType: trainingdomain.ActivitySwimming, Distance: 1.5, AverageSpeed: 1.5,
	}

	t.Run("training foreign key", func(t *testing.T) {
		orphan := &trainingdomain.Training{
			UserID: 999999, StartTime: start, EndTime: start,
			ActivityType: trainingdomain.ActivityTennis,
		}
		require.ErrorIs(t, trainings.Create(ctx, orphan), repo.ErrUserReference)

		require.NoError(t, trainings.Create(ctx, run))
		require.NoError(t, trainings.Create(ctx, swim))
	})

	t.Run("training queries", func(t *testing.T) {
		got, err := trainings.GetByID(ctx, run.ID)
		require.NoError(t, err)
		require.NotNil(t, got.User)
		require.Equal(t, ann.Email, got.User.Email)

		byType, err := trainings.ListByActivityType(ctx, trainingdomain.ActivitySwimming)
		require.NoError(t, err)
		require.Len(t, byType, 1)
		require.Equal(t, swim.ID, byType[0].ID)

		// Граница строгая: тренировка, закончившаяся ровно в момент date, не попадает.
		after, err := trainings.ListEndedAfter(ctx, run.EndTime)
		require.NoError(t, err)
		require.Len(t, after, 1)
		require.Equal(t, swim.ID, after[0].ID)
	})

	t.Run("user delete cascades", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, ann.ID))

		_, err := trainings.GetByID(ctx, run.ID)
		require.ErrorIs(t, err, repo.ErrNotFound)

		left, err := trainings.List(ctx)
		require.NoError(t, err)
		require.Len(t, left, 1)
		require.Equal(t, swim.ID, left[0].ID)

		require.NoError(t, users.Delete(ctx, ann.ID))
	})
}
