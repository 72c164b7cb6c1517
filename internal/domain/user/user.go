package user

import (
	"time"
)

// Канонические поля сортировки списка пользователей.
const (
	SortByID        = "id"
	SortByFirstName = "firstName"
	SortByLastName  = "lastName"
	SortByEmail     = "email"
	SortByBirthDate = "birthdate"
)

// Предельные длины полей, совпадают с размерами колонок таблицы users.
const (
	MaxNameLength  = 100
	MaxEmailLength = 255
)

// User представляет доменную модель пользователя фитнес‑трекера.
//
// Важно: эта модель описывает бизнес‑сущность и не зависит от деталей транспорта (HTTP)
// и конкретного представления в БД.
type User struct {
	ID        int64     // Идентификатор (0, пока пользователь не сохранён)
	FirstName string    // Имя
	LastName  string    // Фамилия
	BirthDate time.Time // Дата рождения (без времени)
	Email     string    // Email (уникальный)
}

// NewUser — фабрика для создания ещё не сохранённого пользователя.
// Валидация выполняется на уровне usecase‑слоя.
func NewUser(firstName, lastName string, birthDate time.Time, email string) *User {
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: DateOnly(birthDate),
		Email:     email,
	}
}

// IsPersisted возвращает true, если хранилище уже назначило пользователю идентификатор.
func (u *User) IsPersisted() bool {
	return u.ID != 0
}

// DateOnly отбрасывает время суток, оставляя календарную дату в UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
