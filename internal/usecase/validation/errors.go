// Package validation содержит виды ошибок сервисного слоя и общие проверки входных данных.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	userdomain "fitness-tracker/internal/domain/user"
)

var (
	// ErrInvalidArgument сообщает о некорректном вводе или нарушенном предусловии.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound сообщает об отсутствии сущности там, где это считается ошибкой.
	ErrNotFound = errors.New("not found")
)

// InvalidArgument оборачивает ErrInvalidArgument с пояснением.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound оборачивает ErrNotFound с пояснением.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// RequireNonBlank проверяет, что значение не пустое после обрезки пробелов.
func RequireNonBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return InvalidArgument("%s is required", field)
	}
	return nil
}

// RequireMaxLength проверяет, что значение не длиннее max символов.
func RequireMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return InvalidArgument("%s must be at most %d characters", field, max)
	}
	return nil
}

// RequireName проверяет имя или фамилию: не пустое и не длиннее userdomain.MaxNameLength.
func RequireName(field, value string) error {
	if err := RequireNonBlank(field, value); err != nil {
		return err
	}
	return RequireMaxLength(field, value, userdomain.MaxNameLength)
}

// RequireEmail проверяет, что email не пустой, содержит '@' и помещается в колонку.
func RequireEmail(email string) error {
	if err := RequireNonBlank("email", email); err != nil {
		return err
	}
	if err := RequireMaxLength("email", email, userdomain.MaxEmailLength); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return InvalidArgument("email must contain @")
	}
	return nil
}

// sortAliases отображает допустимые написания поля сортировки на каноническое имя.
var sortAliases = map[string]string{
	"id":         userdomain.SortByID,
	"firstname":  userdomain.SortByFirstName,
	"first_name": userdomain.SortByFirstName,
	"first":      userdomain.SortByFirstName,
	"lastname":   userdomain.SortByLastName,
	"last_name":  userdomain.SortByLastName,
	"last":       userdomain.SortByLastName,
	"email":      userdomain.SortByEmail,
	"mail":       userdomain.SortByEmail,
	"birthdate":  userdomain.SortByBirthDate,
	"birth_date": userdomain.SortByBirthDate,
	"birth":      userdomain.SortByBirthDate,
	"dob":        userdomain.SortByBirthDate,
}

// NormalizeSortField приводит поле сортировки к каноническому виду.
// Пустое значение означает сортировку по id.
func NormalizeSortField(sortBy string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		return userdomain.SortByID, nil
	}
	field, ok := sortAliases[key]
	if !ok {
		return "", InvalidArgument("unsupported sort field %q", sortBy)
	}
	return field, nil
}

// CheckPage проверяет параметры страницы.
func CheckPage(page, size int) error {
	if page < 0 {
		return InvalidArgument("page must be >= 0, got %d", page)
	}
	if size < 1 {
		return InvalidArgument("size must be >= 1, got %d", size)
	}
	return nil
}
