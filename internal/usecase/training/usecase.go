package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "fitness-tracker/internal/domain/training"
	userdomain "fitness-tracker/internal/domain/user"
	"fitness-tracker/internal/observability"
	repo "fitness-tracker/internal/repository/interfaces"
	"fitness-tracker/internal/usecase/validation"
	"fitness-tracker/pkg/logger"
)

// UserLookup разрешает пользователя-владельца тренировки.
// Отсутствие пользователя сообщается через found == false.
type UserLookup interface {
	Get(ctx context.Context, id int64) (*userdomain.User, bool, error)
}

// Service описывает usecase-слой для работы с тренировками.
type Service interface {
	// Create строит новую тренировку из полей training и пользователя userID.
	// Возвращает validation.ErrInvalidArgument, если у тренировки уже есть id
	// или пользователь не найден.
	Create(ctx context.Context, training *domain.Training, userID int64) (*domain.Training, error)

	// Update перезаписывает все изменяемые поля тренировки trainingID.
	// Возвращает validation.ErrNotFound, если тренировки нет, и
	// validation.ErrInvalidArgument, если не найден пользователь.
	Update(ctx context.Context, training *domain.Training, trainingID, userID int64) (*domain.Training, error)

	// Remove удаляет тренировку. Повторное удаление ошибкой не считается.
	Remove(ctx context.Context, id int64) error

	// Get возвращает тренировку по id; отсутствие не является ошибкой.
	Get(ctx context.Context, id int64) (*domain.Training, bool, error)

	ListAll(ctx context.Context) ([]*domain.Training, error)
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Training, error)
	ListByActivityType(ctx context.Context, activityType domain.ActivityType) ([]*domain.Training, error)
	// ListEndedAfter возвращает тренировки, закончившиеся строго позже date.
	ListEndedAfter(ctx context.Context, date time.Time) ([]*domain.Training, error)
}

type service struct {
	trainings repo.TrainingRepository
	users     UserLookup
	log       logger.Logger
}

// NewService создаёт новый сервис тренировок.
func NewService(trainings repo.TrainingRepository, users UserLookup, log logger.Logger) Service {
	if log == nil {
		log = logger.Discard()
	}
	return &service{trainings: trainings, users: users, log: log}
}

// Create сохраняет новую тренировку.
func (s *service) Create(ctx context.Context, input *domain.Training, userID int64) (*domain.Training, error) {
	if input == nil {
		return nil, validation.InvalidArgument("training is required")
	}
	if input.IsPersisted() {
		return nil, s.reject("create", validation.InvalidArgument("new training must not carry an id, got %d", input.ID))
	}
	owner, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, s.reject("create", err)
	}
	if err := validateFields(input); err != nil {
		return nil, s.reject("create", err)
	}

	training := &domain.Training{}
	overwrite(training, input, owner)

	if err := s.trainings.Create(ctx, training); err != nil {
		if errors.Is(err, repo.ErrUserReference) {
			return nil, s.reject("create", unknownUser(userID))
		}
		observability.RecordWrite("training", "create", observability.OutcomeError)
		return nil, fmt.Errorf("create training: %w", err)
	}

	observability.RecordWrite("training", "create", observability.OutcomeOK)
	s.log.Info("Тренировка создана", map[string]any{"training_id": training.ID, "user_id": userID})
	return training, nil
}

// Update полностью заменяет изменяемые поля тренировки.
func (s *service) Update(ctx context.Context, input *domain.Training, trainingID, userID int64) (*domain.Training, error) {
	if input == nil {
		return nil, validation.InvalidArgument("training is required")
	}
	training, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			observability.RecordWrite("training", "update", observability.OutcomeNotFound)
			return nil, validation.NotFound("training %d", trainingID)
		}
		return nil, fmt.Errorf("load training %d: %w", trainingID, err)
	}
	owner, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, s.reject("update", err)
	}
	if err := validateFields(input); err != nil {
		return nil, s.reject("update", err)
	}

	overwrite(training, input, owner)

	if err := s.trainings.Update(ctx, training); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			observability.RecordWrite("training", "update", observability.OutcomeNotFound)
			return nil, validation.NotFound("training %d", trainingID)
		case errors.Is(err, repo.ErrUserReference):
			return nil, s.reject("update", unknownUser(userID))
		}
		observability.RecordWrite("training", "update", observability.OutcomeError)
		return nil, fmt.Errorf("update training %d: %w", trainingID, err)
	}

	observability.RecordWrite("training", "update", observability.OutcomeOK)
	s.log.Info("Тренировка обновлена", map[string]any{"training_id": trainingID, "user_id": userID})
	return training, nil
}

// Remove удаляет тренировку по id.
func (s *service) Remove(ctx context.Context, id int64) error {
	if err := s.trainings.Delete(ctx, id); err != nil {
		observability.RecordWrite("training", "delete", observability.OutcomeError)
		return fmt.Errorf("delete training %d: %w", id, err)
	}
	observability.RecordWrite("training", "delete", observability.OutcomeOK)
	s.log.Info("Тренировка удалена", map[string]any{"training_id": id})
	return nil
}

// Get возвращает тренировку по id.
func (s *service) Get(ctx context.Context, id int64) (*domain.Training, bool, error) {
	training, err := s.trainings.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return training, true, nil
}

func (s *service) ListAll(ctx context.Context) ([]*domain.Training, error) {
	return s.trainings.List(ctx)
}

func (s *service) ListByUserID(ctx context.Context, userID int64) ([]*domain.Training, error) {
	return s.trainings.ListByUserID(ctx, userID)
}

func (s *service) ListByActivityType(ctx context.Context, activityType domain.ActivityType) ([]*domain.Training, error) {
	return s.trainings.ListByActivityType(ctx, activityType)
}

func (s *service) ListEndedAfter(ctx context.Context, date time.Time) ([]*domain.Training, error) {
	return s.trainings.ListEndedAfter(ctx, date)
}

// resolveUser находит владельца тренировки; отсутствие считается ошибкой ввода.
func (s *service) resolveUser(ctx context.Context, userID int64) (*userdomain.User, error) {
	owner, found, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", userID, err)
	}
	if !found {
		return nil, unknownUser(userID)
	}
	return owner, nil
}

func (s *service) reject(operation string, err error) error {
	if errors.Is(err, validation.ErrInvalidArgument) {
		observability.RecordWrite("training", operation, observability.OutcomeRejected)
		s.log.Warn("Операция над тренировкой отклонена", map[string]any{"operation": operation, "reason": err.Error()})
	}
	return err
}

// overwrite переносит в dst все изменяемые поля src и владельца.
func overwrite(dst, src *domain.Training, owner *userdomain.User) {
	dst.StartTime = src.StartTime
	dst.EndTime = src.EndTime
	dst.ActivityType = src.ActivityType
	dst.Distance = src.Distance
	dst.AverageSpeed = src.AverageSpeed
	dst.AssignUser(owner)
}

func validateFields(t *domain.Training) error {
	if !t.ActivityType.Valid() {
		return validation.InvalidArgument("unknown activity type %q", t.ActivityType)
	}
	if t.Distance < 0 {
		return validation.InvalidArgument("distance must be non-negative")
	}
	if t.AverageSpeed < 0 {
		return validation.InvalidArgument("average speed must be non-negative")
	}
	return nil
}

func unknownUser(id int64) error {
	return validation.InvalidArgument("user %d does not exist", id)
}
