package user

import (
	"time"

	domain "fitness-tracker/internal/domain/user"
)

// DateLayout: формат дат в API.
const DateLayout = "2006-01-02"

// CreateUserRequest описывает тело запроса на создание пользователя.
// Поле id допускается в теле, но сервис отклонит запрос, если оно задано.
type CreateUserRequest struct {
	ID        *int64 `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Email     string `json:"email"`
}

// UpdateUserRequest описывает частичное обновление. Отсутствующие поля не меняются.
type UpdateUserRequest struct {
	ID        *int64  `json:"id,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	BirthDate *string `json:"birth_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Email     *string `json:"email,omitempty"`
}

// PageQuery описывает параметры постраничного списка.
type PageQuery struct {
	Page      int    `form:"page,default=0"`
	Size      int    `form:"size,default=20"`
	SortBy    string `form:"sort_by,default=id"`
	Ascending bool   `form:"ascending,default=true"`
}

// UserResponse описывает пользователя в ответах API.
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
}

// SimpleUserResponse: сокращённое представление для списков.
type SimpleUserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserEmailResponse: пара id и email для поиска по email.
type UserEmailResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ToUserResponse маппит доменную модель в DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: formatDate(u.BirthDate),
		Email:     u.Email,
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

func toSimpleResponses(users []*domain.User) []SimpleUserResponse {
	out := make([]SimpleUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, SimpleUserResponse{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
	}
	return out
}

func toEmailResponses(users []*domain.User) []UserEmailResponse {
	out := make([]UserEmailResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserEmailResponse{ID: u.ID, Email: u.Email})
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// parseDate разбирает дату формата YYYY-MM-DD; пустая строка даёт нулевое время.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
