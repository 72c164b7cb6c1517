package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL (SQLSTATE), которые репозитории переводят в доменные ошибки.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// Имена ограничений из миграций.
const (
	constraintUsersEmailUnique = "idx_users_email_unique"
	constraintTrainingsUserFK  = "fk_trainings_user"
)

// isUniqueViolation проверяет, является ли ошибка нарушением уникального ограничения PostgreSQL.
// Ориентируется на код ошибки 23505 (unique_violation) и, при наличии, имя индекса/constraint.
func isUniqueViolation(err error, constraintNames ...string) bool {
	return isViolation(err, sqlStateUniqueViolation, constraintNames...)
}

// isForeignKeyViolation проверяет, является ли ошибка нарушением внешнего ключа (23503).
func isForeignKeyViolation(err error, constraintNames ...string) bool {
	return isViolation(err, sqlStateForeignKeyViolation, constraintNames...)
}

func isViolation(err error, code string, constraintNames ...string) bool {
	if err == nil {
		return false
	}

	// Предпочитаем структурированную ошибку драйвера pgx
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != code {
			return false
		}
		// Если конкретные имена не заданы — достаточно кода ошибки
		if len(constraintNames) == 0 {
			return true
		}
		for _, name := range constraintNames {
			if name != "" && strings.EqualFold(pgErr.ConstraintName, name) {
				return true
			}
		}
		return false
	}

	// Fallback для нестандартных ошибок: ищем код и имя индекса/constraint в сообщении
	errStr := err.Error()
	if !strings.Contains(errStr, code) {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	lower := strings.ToLower(errStr)
	for _, name := range constraintNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
