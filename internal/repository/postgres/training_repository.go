package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "fitness-tracker/internal/domain/training"
	repo "fitness-tracker/internal/repository/interfaces"
)

// pgTraining представляет ORM-модель для таблицы trainings.
type pgTraining struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       int64     `gorm:"column:user_id;not null"`
	User         *pgUser   `gorm:"foreignKey:UserID;references:ID"`
	StartTime    time.Time `gorm:"column:start_time;type:timestamptz;not null"`
	EndTime      time.Time `gorm:"column:end_time;type:timestamptz;not null"`
	ActivityType string    `gorm:"column:activity_type;type:varchar(32);not null"`
	Distance     float64   `gorm:"column:distance;not null"`
	AverageSpeed float64   `gorm:"column:average_speed;not null"`
}

func (pgTraining) TableName() string {
	return "trainings"
}

func (m *pgTraining) toDomain() *domain.Training {
	t := &domain.Training{
		ID:           m.ID,
		UserID:       m.UserID,
		StartTime:    m.StartTime.UTC(),
		EndTime:      m.EndTime.UTC(),
		ActivityType: domain.ActivityType(m.ActivityType),
		Distance:     m.Distance,
		AverageSpeed: m.AverageSpeed,
	}
	if m.User != nil {
		t.User = m.User.toDomain()
	}
	return t
}

func fromDomainTraining(t *domain.Training) *pgTraining {
	return &pgTraining{
		ID:           t.ID,
		UserID:       t.UserID,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		ActivityType: string(t.ActivityType),
		Distance:     t.Distance,
		AverageSpeed: t.AverageSpeed,
	}
}

// TrainingRepository реализует repo.TrainingRepository на GORM/Postgres.
type TrainingRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.TrainingRepository = (*TrainingRepository)(nil)

// NewTrainingRepository создает новый репозиторий тренировок.
func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// Create сохраняет новую тренировку.
func (r *TrainingRepository) Create(ctx context.Context, training *domain.Training) error {
	model := fromDomainTraining(training)
	model.ID = 0
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(model).Error
	if err != nil {
		if isForeignKeyViolation(err, constraintTrainingsUserFK) {
			return repo.ErrUserReference
		}
		return err
	}
	training.ID = model.ID
	return nil
}

// GetByID возвращает тренировку вместе с пользователем.
func (r *TrainingRepository) GetByID(ctx context.Context, id int64) (*domain.Training, error) {
	var model pgTraining
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// List возвращает все тренировки.
func (r *TrainingRepository) List(ctx context.Context) ([]*domain.Training, error) {
	return r.listWhere(ctx, "")
}

// ListByUserID возвращает тренировки пользователя.
func (r *TrainingRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Training, error) {
	return r.listWhere(ctx, "user_id = ?", userID)
}

// ListByActivityType возвращает тренировки указанного вида.
func (r *TrainingRepository) ListByActivityType(ctx context.Context, activityType domain.ActivityType) ([]*domain.Training, error) {
	return r.listWhere(ctx, "activity_type = ?", string(activityType))
}

// ListEndedAfter возвращает тренировки, закончившиеся строго позже date.
func (r *TrainingRepository) ListEndedAfter(ctx context.Context, date time.Time) ([]*domain.Training, error) {
	return r.listWhere(ctx, "end_time > ?", date)
}

func (r *TrainingRepository) listWhere(ctx context.Context, query string, args ...interface{}) ([]*domain.Training, error) {
	tx := r.db.WithContext(ctx).Preload("User")
	if query != "" {
		tx = tx.Where(query, args...)
	}

	var models []pgTraining
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	trainings := make([]*domain.Training, 0, len(models))
	for i := range models {
		trainings = append(trainings, models[i].toDomain())
	}
	return trainings, nil
}

// Update перезаписывает все изменяемые поля тренировки.
func (r *TrainingRepository) Update(ctx context.Context, training *domain.Training) error {
	model := fromDomainTraining(training)

	updates := map[string]interface{}{
		"user_id":       model.UserID,
		"start_time":    model.StartTime,
		"end_time":      model.EndTime,
		"activity_type": model.ActivityType,
		"distance":      model.Distance,
		"average_speed": model.AverageSpeed,
	}

	result := r.db.WithContext(ctx).
		Model(&pgTraining{}).
		Where("id = ?", model.ID).
		Updates(updates)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintTrainingsUserFK) {
			return repo.ErrUserReference
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет тренировку.
func (r *TrainingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pgTraining{}).Error
}
