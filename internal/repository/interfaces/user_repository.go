package interfaces

import (
	"context"
	"errors"
	"math"
	"time"

	domain "fitness-tracker/internal/domain/user"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище.
var ErrNotFound = errors.New("entity not found")

// ErrEmailExists возвращается, когда пользователь с таким email уже существует.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidSortField возвращается, когда хранилище не умеет сортировать по указанному полю.
var ErrInvalidSortField = errors.New("invalid sort field")

// PageQuery описывает запрос страницы пользователей.
// SortField: одно из канонических имён domain.SortBy*.
type PageQuery struct {
	Page      int
	Size      int
	SortField string
	Ascending bool
}

// Offset возвращает смещение первой записи страницы.
// При переполнении int смещение насыщается до math.MaxInt, и страница оказывается пустой.
func (q PageQuery) Offset() int {
	if q.Page <= 0 || q.Size <= 0 {
		return 0
	}
	if q.Page > math.MaxInt/q.Size {
		return math.MaxInt
	}
	return q.Page * q.Size
}

// UserRepository определяет контракт для работы с пользователями на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, SQL и т.п.).
type UserRepository interface {
	// Create сохраняет нового пользователя и проставляет ему идентификатор.
	// Возвращает ErrEmailExists, если email уже используется.
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail возвращает пользователя по точному совпадению email.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SearchByEmail возвращает пользователей, email которых содержит фрагмент (без учёта регистра).
	SearchByEmail(ctx context.Context, fragment string) ([]*domain.User, error)

	// ListBornBefore возвращает пользователей с датой рождения строго раньше date.
	ListBornBefore(ctx context.Context, date time.Time) ([]*domain.User, error)

	// List возвращает всех пользователей, упорядоченных по id.
	List(ctx context.Context) ([]*domain.User, error)

	// ListPage возвращает страницу пользователей.
	// Страница за пределами выборки даёт пустой срез.
	ListPage(ctx context.Context, query PageQuery) ([]*domain.User, error)

	// Update сохраняет изменённого пользователя.
	// Возвращает ErrNotFound, если пользователя нет, и ErrEmailExists при конфликте email.
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя. Отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, id int64) error
}
