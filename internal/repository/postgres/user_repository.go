package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "fitness-tracker/internal/domain/user"
	repo "fitness-tracker/internal/repository/interfaces"
)

// pgUser представляет собой ORM-модель для таблицы users.
// Она максимально близко отражает схему БД и маппится в доменную модель User.
type pgUser struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(100);not null"`
	BirthDate time.Time `gorm:"column:birth_date;type:date;not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
}

func (pgUser) TableName() string {
	return "users"
}

// sortColumns сопоставляет канонические поля сортировки с колонками таблицы.
var sortColumns = map[string]string{
	domain.SortByID:        "id",
	domain.SortByFirstName: "first_name",
	domain.SortByLastName:  "last_name",
	domain.SortByEmail:     "email",
	domain.SortByBirthDate: "birth_date",
}

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// toDomain маппит ORM-модель в доменную.
func (m *pgUser) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		BirthDate: domain.DateOnly(m.BirthDate),
		Email:     m.Email,
	}
}

// fromDomain маппит доменную модель в ORM-модель.
func fromDomain(u *domain.User) *pgUser {
	return &pgUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
		Email:     u.Email,
	}
}

func usersToDomain(models []pgUser) []*domain.User {
	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toDomain())
	}
	return users
}

// Create создает нового пользователя в БД и проставляет ему идентификатор.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := fromDomain(user)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err, constraintUsersEmailUnique) {
			return repo.ErrEmailExists
		}
		return err
	}
	user.ID = model.ID
	return nil
}

// oneByCondition возвращает одну запись по условию.
func (r *UserRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var model pgUser
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.oneByCondition(ctx, "id = ?", id)
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.oneByCondition(ctx, "email = ?", email)
}

// SearchByEmail возвращает пользователей, email которых содержит фрагмент.
func (r *UserRepository) SearchByEmail(ctx context.Context, fragment string) ([]*domain.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"
	return r.listWhere(ctx, "LOWER(email) LIKE ?", pattern)
}

// ListBornBefore возвращает пользователей, родившихся строго раньше date.
func (r *UserRepository) ListBornBefore(ctx context.Context, date time.Time) ([]*domain.User, error) {
	return r.listWhere(ctx, "birth_date < ?", domain.DateOnly(date))
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.listWhere(ctx, "")
}

func (r *UserRepository) listWhere(ctx context.Context, query string, args ...interface{}) ([]*domain.User, error) {
	var models []pgUser
	tx := r.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return usersToDomain(models), nil
}

// ListPage возвращает страницу пользователей, отсортированную по запрошенному полю.
func (r *UserRepository) ListPage(ctx context.Context, query repo.PageQuery) ([]*domain.User, error) {
	column, ok := sortColumns[query.SortField]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repo.ErrInvalidSortField, query.SortField)
	}

	tx := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: !query.Ascending})
	// Доупорядочиваем по id, чтобы страницы были стабильными при равных значениях
	if column != "id" {
		tx = tx.Order("id ASC")
	}

	var models []pgUser
	if err := tx.Offset(query.Offset()).Limit(query.Size).Find(&models).Error; err != nil {
		return nil, err
	}
	return usersToDomain(models), nil
}

// Update обновляет данные пользователя.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	model := fromDomain(user)

	updates := map[string]interface{}{
		"first_name": model.FirstName,
		"last_name":  model.LastName,
		"birth_date": model.BirthDate,
		"email":      model.Email,
	}

	result := r.db.WithContext(ctx).
		Model(&pgUser{}).
		Where("id = ?", model.ID).
		Updates(updates)

	if result.Error != nil {
		// Проверка на нарушение уникальности при обновлении
		if isUniqueViolation(result.Error, constraintUsersEmailUnique) {
			return repo.ErrEmailExists
		}
		return result.Error
	}

	// Ни одна строка не обновлена, значит пользователя нет
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

// Delete удаляет пользователя. Его тренировки удаляются каскадно на стороне БД.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pgUser{}).Error
}

// escapeLike экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
