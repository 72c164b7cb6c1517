// Package memory содержит потокобезопасную реализацию шлюза хранения в памяти процесса.
// Она повторяет правила схемы Postgres: уникальный email, внешний ключ
// trainings.user_id с каскадным удалением, последовательные идентификаторы.
package memory

import (
	"sync"

	trainingdomain "fitness-tracker/internal/domain/training"
	userdomain "fitness-tracker/internal/domain/user"
)

// Store хранит пользователей и тренировки. Репозитории, полученные из одного Store,
// видят общие данные, поэтому ссылочная целостность соблюдается между ними.
type Store struct {
	mu sync.RWMutex

	users          map[int64]userdomain.User
	trainings      map[int64]trainingdomain.Training
	nextUserID     int64
	nextTrainingID int64
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]userdomain.User),
		trainings: make(map[int64]trainingdomain.Training),
	}
}

// Users возвращает репозиторий пользователей поверх хранилища.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Trainings возвращает репозиторий тренировок поверх хранилища.
func (s *Store) Trainings() *TrainingRepository {
	return &TrainingRepository{store: s}
}

// emailTakenLocked сообщает, занят ли email другим пользователем. Вызывать под блокировкой.
func (s *Store) emailTakenLocked(email string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}
