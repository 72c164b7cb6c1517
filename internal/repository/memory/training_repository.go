package memory

import (
	"context"
	"sort"
	"time"

	domain "fitness-tracker/internal/domain/training"
	repo "fitness-tracker/internal/repository/interfaces"
)

// TrainingRepository реализует repo.TrainingRepository в памяти.
type TrainingRepository struct {
	store *Store
}

var _ repo.TrainingRepository = (*TrainingRepository)(nil)

// Create сохраняет тренировку, проверяя ссылку на пользователя.
func (r *TrainingRepository) Create(_ context.Context, training *domain.Training) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[training.UserID]; !ok {
		return repo.ErrUserReference
	}
	s.nextTrainingID++
	training.ID = s.nextTrainingID
	stored := *training
	stored.User = nil
	s.trainings[training.ID] = stored
	return nil
}

// GetByID возвращает тренировку вместе с пользователем.
func (r *TrainingRepository) GetByID(_ context.Context, id int64) (*domain.Training, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trainings[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.withUserLocked(t), nil
}

// List возвращает все тренировки.
func (r *TrainingRepository) List(_ context.Context) ([]*domain.Training, error) {
	return r.filter(func(domain.Training) bool { return true }), nil
}

// ListByUserID возвращает тренировки пользователя.
func (r *TrainingRepository) ListByUserID(_ context.Context, userID int64) ([]*domain.Training, error) {
	return r.filter(func(t domain.Training) bool { return t.UserID == userID }), nil
}

// ListByActivityType возвращает тренировки указанного вида.
func (r *TrainingRepository) ListByActivityType(_ context.Context, activityType domain.ActivityType) ([]*domain.Training, error) {
	return r.filter(func(t domain.Training) bool { return t.ActivityType == activityType }), nil
}

// ListEndedAfter возвращает тренировки, закончившиеся строго позже date.
func (r *TrainingRepository) ListEndedAfter(_ context.Context, date time.Time) ([]*domain.Training, error) {
	return r.filter(func(t domain.Training) bool { return t.EndTime.After(date) }), nil
}

// Update перезаписывает сохранённую тренировку.
func (r *TrainingRepository) Update(_ context.Context, training *domain.Training) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trainings[training.ID]; !ok {
		return repo.ErrNotFound
	}
	if _, ok := s.users[training.UserID]; !ok {
		return repo.ErrUserReference
	}
	stored := *training
	stored.User = nil
	s.trainings[training.ID] = stored
	return nil
}

// Delete удаляет тренировку.
func (r *TrainingRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.trainings, id)
	return nil
}

func (r *TrainingRepository) filter(match func(domain.Training) bool) []*domain.Training {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Training, 0)
	for _, t := range s.trainings {
		if match(t) {
			out = append(out, s.withUserLocked(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// withUserLocked возвращает копию тренировки с подставленной копией пользователя.
func (s *Store) withUserLocked(t domain.Training) *domain.Training {
	if u, ok := s.users[t.UserID]; ok {
		t.User = &u
	}
	return &t
}
