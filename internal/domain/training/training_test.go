package training_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	domain "fitness-tracker/internal/domain/training"
	userdomain "fitness-tracker/internal/domain/user"
)

func TestParseActivityType(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.ActivityType
		wantErr bool
	}{
		{"RUNNING", domain.ActivityRunning, false},
		{"running", domain.ActivityRunning, false},
		{" Cycling ", domain.ActivityCycling, false},
		{"TableTennis", domain.ActivityTableTennis, false},
		{"tabletennis", domain.ActivityTableTennis, false},
		{"Tennis", domain.ActivityTennis, false},
		{"rowing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseActivityType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestActivityType_DisplayName(t *testing.T) {
	require.Equal(t, "Running", domain.ActivityRunning.DisplayName())
	require.Equal(t, "Swimming", domain.ActivitySwimming.DisplayName())
	require.Equal(t, "TableTennis", domain.ActivityTableTennis.DisplayName())
	require.Equal(t, "ROWING", domain.ActivityType("ROWING").DisplayName())
	require.False(t, domain.ActivityType("ROWING").Valid())
	require.Len(t, domain.ActivityTypes, 6)
}

func TestTraining_AssignUser(t *testing.T) {
	tr := &domain.Training{}
	require.False(t, tr.IsPersisted())

	tr.AssignUser(&userdomain.User{ID: 42, Email: "a@x.com"})
	require.Equal(t, int64(42), tr.UserID)
	require.Equal(t, "a@x.com", tr.User.Email)
}
