package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domain "fitness-tracker/internal/domain/user"
	repo "fitness-tracker/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository в памяти.
type UserRepository struct {
	store *Store
}

var _ repo.UserRepository = (*UserRepository)(nil)

// Create сохраняет копию пользователя и назначает ему идентификатор.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(user.Email, 0) {
		return repo.ErrEmailExists
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	return nil
}

// GetByID возвращает копию пользователя по идентификатору.
func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

// GetByEmail возвращает пользователя по точному совпадению email.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	users := r.filter(func(u domain.User) bool { return u.Email == email })
	if len(users) == 0 {
		return nil, repo.ErrNotFound
	}
	return users[0], nil
}

// SearchByEmail ищет пользователей по фрагменту email без учёта регистра.
func (r *UserRepository) SearchByEmail(_ context.Context, fragment string) ([]*domain.User, error) {
	needle := strings.ToLower(fragment)
	return r.filter(func(u domain.User) bool {
		return strings.Contains(strings.ToLower(u.Email), needle)
	}), nil
}

// ListBornBefore возвращает пользователей с датой рождения строго раньше date.
func (r *UserRepository) ListBornBefore(_ context.Context, date time.Time) ([]*domain.User, error) {
	threshold := domain.DateOnly(date)
	return r.filter(func(u domain.User) bool { return u.BirthDate.Before(threshold) }), nil
}

// List возвращает всех пользователей по возрастанию id.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	return r.filter(func(domain.User) bool { return true }), nil
}

// ListPage сортирует всех пользователей и вырезает запрошенную страницу.
func (r *UserRepository) ListPage(_ context.Context, query repo.PageQuery) ([]*domain.User, error) {
	compare, ok := userComparators[query.SortField]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repo.ErrInvalidSortField, query.SortField)
	}

	users := r.filter(func(domain.User) bool { return true })
	sort.SliceStable(users, func(i, j int) bool {
		c := compare(users[i], users[j])
		if !query.Ascending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// При равных значениях порядок определяется id, как и в Postgres-реализации
		return users[i].ID < users[j].ID
	})

	offset := query.Offset()
	if offset < 0 || offset >= len(users) {
		return []*domain.User{}, nil
	}
	end := offset + query.Size
	if end > len(users) || end < offset {
		end = len(users)
	}
	return users[offset:end], nil
}

// Update заменяет сохранённого пользователя.
func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repo.ErrNotFound
	}
	if s.emailTakenLocked(user.Email, user.ID) {
		return repo.ErrEmailExists
	}
	s.users[user.ID] = *user
	return nil
}

// Delete удаляет пользователя вместе с его тренировками.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for tid, t := range s.trainings {
		if t.UserID == id {
			delete(s.trainings, tid)
		}
	}
	return nil
}

// filter возвращает копии подходящих пользователей, упорядоченные по id.
func (r *UserRepository) filter(match func(domain.User) bool) []*domain.User {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.User, 0)
	for _, u := range s.users {
		if match(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// userComparators сравнивают пользователей по каждому полю сортировки.
var userComparators = map[string]func(a, b *domain.User) int{
	domain.SortByID: func(a, b *domain.User) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	},
	domain.SortByFirstName: func(a, b *domain.User) int { return strings.Compare(a.FirstName, b.FirstName) },
	domain.SortByLastName:  func(a, b *domain.User) int { return strings.Compare(a.LastName, b.LastName) },
	domain.SortByEmail:     func(a, b *domain.User) int { return strings.Compare(a.Email, b.Email) },
	domain.SortByBirthDate: func(a, b *domain.User) int { return a.BirthDate.Compare(b.BirthDate) },
}
