package interfaces

import (
	"context"
	"errors"
	"time"

	domain "fitness-tracker/internal/domain/training"
)

// ErrUserReference возвращается, когда тренировка ссылается на несуществующего пользователя.
var ErrUserReference = errors.New("referenced user does not exist")

// TrainingRepository определяет контракт для работы с тренировками на уровне хранилища.
// Все методы чтения заполняют поле User разрешённым пользователем.
type TrainingRepository interface {
	// Create сохраняет новую тренировку и проставляет ей идентификатор.
	// Возвращает ErrUserReference, если пользователь не существует.
	Create(ctx context.Context, training *domain.Training) error

	// GetByID возвращает тренировку по идентификатору.
	// Возвращает (nil, ErrNotFound), если тренировка не найдена.
	GetByID(ctx context.Context, id int64) (*domain.Training, error)

	// List возвращает все тренировки.
	List(ctx context.Context) ([]*domain.Training, error)

	// ListByUserID возвращает тренировки пользователя.
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Training, error)

	// ListByActivityType возвращает тренировки указанного вида.
	ListByActivityType(ctx context.Context, activityType domain.ActivityType) ([]*domain.Training, error)

	// ListEndedAfter возвращает тренировки, закончившиеся строго позже date.
	ListEndedAfter(ctx context.Context, date time.Time) ([]*domain.Training, error)

	// Update перезаписывает все изменяемые поля тренировки.
	// Возвращает ErrNotFound, если тренировки нет, и ErrUserReference при битой ссылке.
	Update(ctx context.Context, training *domain.Training) error

	// Delete удаляет тренировку. Отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, id int64) error
}
