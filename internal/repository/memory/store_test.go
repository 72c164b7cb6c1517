package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	trainingdomain "fitness-tracker/internal/domain/training"
	userdomain "fitness-tracker/internal/domain/user"
	repo "fitness-tracker/internal/repository/interfaces"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUsers(t *testing.T, users *UserRepository) []*userdomain.User {
	t.Helper()
	ctx := context.Background()
	seed := []*userdomain.User{
		userdomain.NewUser("Ann", "Lee", date(1990, 1, 1), "ann@x.com"),
		userdomain.NewUser("Bob", "Kim", date(1980, 5, 5), "BOB@y.org"),
		userdomain.NewUser("Ann", "Adams", date(2000, 3, 3), "adams@x.com"),
	}
	for _, u := range seed {
		require.NoError(t, users.Create(ctx, u))
	}
	return seed
}

func TestUserRepository_CreateAssignsSequentialIDsAndRejectsDuplicateEmail(t *testing.T) {
	users := NewStore().Users()
	seeded := seedUsers(t, users)

	require.Equal(t, int64(1), seeded[0].ID)
	require.Equal(t, int64(3), seeded[2].ID)

	dup := userdomain.NewUser("X", "Y", date(1999, 1, 1), "ann@x.com")
	require.ErrorIs(t, users.Create(context.Background(), dup), repo.ErrEmailExists)
	require.Zero(t, dup.ID)
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	seedUsers(t, users)

	_, err := users.GetByID(ctx, 99)
	require.ErrorIs(t, err, repo.ErrNotFound)

	u, err := users.GetByEmail(ctx, "BOB@y.org")
	require.NoError(t, err)
	require.Equal(t, "Bob", u.FirstName)

	_, err = users.GetByEmail(ctx, "bob@y.org")
	require.ErrorIs(t, err, repo.ErrNotFound, "exact lookup is case-sensitive")

	found, err := users.SearchByEmail(ctx, "X.CoM")
	require.NoError(t, err)
	require.Len(t, found, 2)

	older, err := users.ListBornBefore(ctx, date(1990, 1, 1))
	require.NoError(t, err)
	require.Len(t, older, 1)
	require.Equal(t, "Bob", older[0].FirstName)
}

func TestUserRepository_ListPage(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	seedUsers(t, users)

	page, err := users.ListPage(ctx, repo.PageQuery{Page: 0, Size: 2, SortField: userdomain.SortByBirthDate, Ascending: true})
	require.NoError(t, err)
	require.Equal(t, []string{"Bob", "Ann"}, []string{page[0].FirstName, page[1].FirstName})
	require.Equal(t, "Lee", page[1].LastName)

	page, err = users.ListPage(ctx, repo.PageQuery{Page: 0, Size: 3, SortField: userdomain.SortByFirstName, Ascending: false})
	require.NoError(t, err)
	require.Equal(t, "Bob", page[0].FirstName)
	// Равные имена упорядочены по id
	require.Equal(t, int64(1), page[1].ID)
	require.Equal(t, int64(3), page[2].ID)

	page, err = users.ListPage(ctx, repo.PageQuery{Page: 5, Size: 2, SortField: userdomain.SortByID, Ascending: true})
	require.NoError(t, err)
	require.Empty(t, page)

	// Номер страницы, при котором page*size переполняет int
	for _, size := range []int{2, 4} {
		page, err = users.ListPage(ctx, repo.PageQuery{Page: 1 << 62, Size: size, SortField: userdomain.SortByID, Ascending: true})
		require.NoError(t, err)
		require.Empty(t, page, "size=%d", size)
	}

	_, err = users.ListPage(ctx, repo.PageQuery{Page: 0, Size: 2, SortField: "bogus"})
	require.ErrorIs(t, err, repo.ErrInvalidSortField)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	seedUsers(t, users)

	u, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	u.FirstName = "Mutated"

	again, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Ann", again.FirstName)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := store.Users()
	seeded := seedUsers(t, users)

	clash := *seeded[0]
	clash.Email = "adams@x.com"
	require.ErrorIs(t, users.Update(ctx, &clash), repo.ErrEmailExists)

	ghost := userdomain.User{ID: 77, Email: "g@x.com"}
	require.ErrorIs(t, users.Update(ctx, &ghost), repo.ErrNotFound)

	tr := &trainingdomain.Training{UserID: seeded[0].ID, ActivityType: trainingdomain.ActivityRunning}
	require.NoError(t, store.Trainings().Create(ctx, tr))

	require.NoError(t, users.Delete(ctx, seeded[0].ID))
	require.NoError(t, users.Delete(ctx, seeded[0].ID), "delete is idempotent")

	_, err := store.Trainings().GetByID(ctx, tr.ID)
	require.ErrorIs(t, err, repo.ErrNotFound, "trainings are removed with their user")
}

func TestTrainingRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seeded := seedUsers(t, store.Users())
	trainings := store.Trainings()

	orphan := &trainingdomain.Training{UserID: 404}
	require.ErrorIs(t, trainings.Create(ctx, orphan), repo.ErrUserReference)

	run := &trainingdomain.Training{
		UserID:       seeded[0].ID,
		StartTime:    date(2024, 1, 1),
		EndTime:      date(2024, 1, 2),
		ActivityType: trainingdomain.ActivityRunning,
		Distance:     10,
		AverageSpeed: 9.5,
	}
	swim := &trainingdomain.Training{
		UserID:       seeded[1].ID,
		StartTime:    date(2024, 2, 1),
		EndTime:      date(2024, 2, 1),
		ActivityType: trainingdomain.ActivitySwimming,
	}
	require.NoError(t, trainings.Create(ctx, run))
	require.NoError(t, trainings.Create(ctx, swim))

	got, err := trainings.GetByID(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	require.Equal(t, "ann@x.com", got.User.Email)

	byUser, err := trainings.ListByUserID(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	byType, err := trainings.ListByActivityType(ctx, trainingdomain.ActivityRunning)
	require.NoError(t, err)
	require.Len(t, byType, 1)

	ended, err := trainings.ListEndedAfter(ctx, date(2024, 1, 2))
	require.NoError(t, err)
	require.Len(t, ended, 1, "strictly after")
	require.Equal(t, swim.ID, ended[0].ID)

	ghost := &trainingdomain.Training{ID: 999, UserID: seeded[0].ID}
	require.ErrorIs(t, trainings.Update(ctx, ghost), repo.ErrNotFound)

	moved := *run
	moved.UserID = 404
	require.ErrorIs(t, trainings.Update(ctx, &moved), repo.ErrUserReference)

	require.NoError(t, trainings.Delete(ctx, run.ID))
	all, err := trainings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
