package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "fitness-tracker/internal/domain/user"
	"fitness-tracker/internal/observability"
	repo "fitness-tracker/internal/repository/interfaces"
	"fitness-tracker/internal/usecase/validation"
	"fitness-tracker/pkg/logger"
)

// Service описывает usecase-слой для работы с пользователями:
// создание, частичное обновление, удаление, поиск и постраничный вывод.
type Service interface {
	// Create сохраняет нового пользователя.
	// Возвращает validation.ErrInvalidArgument, если у пользователя уже есть id,
	// обязательные поля пусты, email некорректен или уже занят.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update применяет к пользователю только переданные поля.
	// Если пользователь не найден, возвращает (nil, false, nil).
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, bool, error)

	// Remove удаляет пользователя. Повторное удаление ошибкой не считается.
	Remove(ctx context.Context, id int64) error

	// Get возвращает пользователя по id; отсутствие не является ошибкой.
	Get(ctx context.Context, id int64) (*domain.User, bool, error)

	// GetByEmail возвращает пользователя по точному email; отсутствие не является ошибкой.
	GetByEmail(ctx context.Context, email string) (*domain.User, bool, error)

	// FindByEmailContaining ищет пользователей по фрагменту email без учёта регистра.
	FindByEmailContaining(ctx context.Context, fragment string) ([]*domain.User, error)

	// FindOlderThan возвращает пользователей, родившихся строго раньше date.
	FindOlderThan(ctx context.Context, date time.Time) ([]*domain.User, error)

	// FindAll возвращает всех пользователей.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindPaginated возвращает страницу пользователей, отсортированную по
	// нормализованному полю sortBy.
	FindPaginated(ctx context.Context, page, size int, sortBy string, ascending bool) ([]*domain.User, error)
}

// UpdateInput описывает частичное обновление пользователя. Все поля опциональны:
// nil означает «оставить как есть».
type UpdateInput struct {
	ID        *int64
	FirstName *string
	LastName  *string
	BirthDate *time.Time
	Email     *string
}

type service struct {
	users repo.UserRepository
	log   logger.Logger
}

// NewService создаёт новый сервис пользователей.
func NewService(users repo.UserRepository, log logger.Logger) Service {
	if log == nil {
		log = logger.Discard()
	}
	return &service{users: users, log: log}
}

// Create регистрирует нового пользователя.
func (s *service) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, validation.InvalidArgument("user is required")
	}
	if user.IsPersisted() {
		return nil, s.reject("create", validation.InvalidArgument("new user must not carry an id, got %d", user.ID))
	}
	if err := validateNew(user); err != nil {
		return nil, s.reject("create", err)
	}
	if err := s.ensureEmailFree(ctx, user.Email, 0); err != nil {
		return nil, s.reject("create", err)
	}

	user.BirthDate = domain.DateOnly(user.BirthDate)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrEmailExists) {
			return nil, s.reject("create", errEmailTaken)
		}
		observability.RecordWrite("user", "create", observability.OutcomeError)
		return nil, fmt.Errorf("create user: %w", err)
	}

	observability.RecordWrite("user", "create", observability.OutcomeOK)
	s.log.Info("Пользователь создан", map[string]any{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// Update обновляет только переданные поля пользователя.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, bool, error) {
	if input.ID != nil && *input.ID != id {
		return nil, false, s.reject("update", validation.InvalidArgument("path/body id mismatch: %d != %d", id, *input.ID))
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			observability.RecordWrite("user", "update", observability.OutcomeNotFound)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load user %d: %w", id, err)
	}

	// Применяем изменения к доменной модели
	if input.FirstName != nil {
		if err := validation.RequireName("first name", *input.FirstName); err != nil {
			return nil, false, s.reject("update", err)
		}
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		if err := validation.RequireName("last name", *input.LastName); err != nil {
			return nil, false, s.reject("update", err)
		}
		user.LastName = *input.LastName
	}
	if input.BirthDate != nil {
		if input.BirthDate.IsZero() {
			return nil, false, s.reject("update", validation.InvalidArgument("birth date is required"))
		}
		user.BirthDate = domain.DateOnly(*input.BirthDate)
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := validation.RequireEmail(*input.Email); err != nil {
			return nil, false, s.reject("update", err)
		}
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, false, s.reject("update", err)
		}
		user.Email = *input.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			// Пользователь удалён между чтением и записью
			observability.RecordWrite("user", "update", observability.OutcomeNotFound)
			return nil, false, nil
		case errors.Is(err, repo.ErrEmailExists):
			return nil, false, s.reject("update", errEmailTaken)
		}
		observability.RecordWrite("user", "update", observability.OutcomeError)
		return nil, false, fmt.Errorf("update user %d: %w", id, err)
	}

	observability.RecordWrite("user", "update", observability.OutcomeOK)
	s.log.Info("Пользователь обновлён", map[string]any{"user_id": id})
	return user, true, nil
}

// Remove удаляет пользователя по id.
func (s *service) Remove(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		observability.RecordWrite("user", "delete", observability.OutcomeError)
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	observability.RecordWrite("user", "delete", observability.OutcomeOK)
	s.log.Info("Пользователь удалён", map[string]any{"user_id": id})
	return nil
}

// Get возвращает пользователя по id.
func (s *service) Get(ctx context.Context, id int64) (*domain.User, bool, error) {
	return soft(s.users.GetByID(ctx, id))
}

// GetByEmail возвращает пользователя по email.
func (s *service) GetByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	return soft(s.users.GetByEmail(ctx, email))
}

// FindByEmailContaining ищет пользователей по фрагменту email.
func (s *service) FindByEmailContaining(ctx context.Context, fragment string) ([]*domain.User, error) {
	return s.users.SearchByEmail(ctx, fragment)
}

// FindOlderThan возвращает пользователей старше указанной даты рождения.
func (s *service) FindOlderThan(ctx context.Context, date time.Time) ([]*domain.User, error) {
	return s.users.ListBornBefore(ctx, domain.DateOnly(date))
}

// FindAll возвращает всех пользователей.
func (s *service) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// FindPaginated проверяет параметры страницы и возвращает её содержимое.
func (s *service) FindPaginated(ctx context.Context, page, size int, sortBy string, ascending bool) ([]*domain.User, error) {
	if err := validation.CheckPage(page, size); err != nil {
		return nil, err
	}
	field, err := validation.NormalizeSortField(sortBy)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListPage(ctx, repo.PageQuery{
		Page:      page,
		Size:      size,
		SortField: field,
		Ascending: ascending,
	})
	if err != nil {
		if errors.Is(err, repo.ErrInvalidSortField) {
			return nil, validation.InvalidArgument("unsupported sort field %q", sortBy)
		}
		return nil, fmt.Errorf("list users page %d: %w", page, err)
	}
	return users, nil
}

// ensureEmailFree проверяет, что email не принадлежит другому пользователю.
func (s *service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != selfID:
		return errEmailTaken
	}
	return nil
}

// reject учитывает отклонённую операцию и пишет её в лог.
func (s *service) reject(operation string, err error) error {
	if errors.Is(err, validation.ErrInvalidArgument) {
		observability.RecordWrite("user", operation, observability.OutcomeRejected)
		s.log.Warn("Операция над пользователем отклонена", map[string]any{"operation": operation, "reason": err.Error()})
	}
	return err
}

func validateNew(user *domain.User) error {
	if err := validation.RequireName("first name", user.FirstName); err != nil {
		return err
	}
	if err := validation.RequireName("last name", user.LastName); err != nil {
		return err
	}
	if user.BirthDate.IsZero() {
		return validation.InvalidArgument("birth date is required")
	}
	return validation.RequireEmail(user.Email)
}

var errEmailTaken = validation.InvalidArgument("email is already taken")

// soft превращает repo.ErrNotFound в пустой результат.
func soft(user *domain.User, err error) (*domain.User, bool, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
