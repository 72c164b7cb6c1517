package training

import (
	"fmt"
	"strings"
	"time"

	userdomain "fitness-tracker/internal/domain/user"
)

// ActivityType описывает вид тренировки. Набор значений закрыт.
type ActivityType string

const (
	ActivityRunning     ActivityType = "RUNNING"
	ActivityCycling     ActivityType = "CYCLING"
	ActivityWalking     ActivityType = "WALKING"
	ActivitySwimming    ActivityType = "SWIMMING"
	ActivityTennis      ActivityType = "TENNIS"
	ActivityTableTennis ActivityType = "TABLETENNIS"
)

// ActivityTypes перечисляет все допустимые виды тренировок.
var ActivityTypes = []ActivityType{
	ActivityRunning,
	ActivityCycling,
	ActivityWalking,
	ActivitySwimming,
	ActivityTennis,
	ActivityTableTennis,
}

var displayNames = map[ActivityType]string{
	ActivityRunning:     "Running",
	ActivityCycling:     "Cycling",
	ActivityWalking:     "Walking",
	ActivitySwimming:    "Swimming",
	ActivityTennis:      "Tennis",
	ActivityTableTennis: "TableTennis",
}

// DisplayName возвращает человекочитаемое название вида тренировки.
func (a ActivityType) DisplayName() string {
	if name, ok := displayNames[a]; ok {
		return name
	}
	return string(a)
}

// Valid сообщает, входит ли значение в перечисление.
func (a ActivityType) Valid() bool {
	_, ok := displayNames[a]
	return ok
}

// ParseActivityType разбирает вид тренировки по имени (RUNNING) или
// отображаемому названию (TableTennis) без учёта регистра.
func ParseActivityType(s string) (ActivityType, error) {
	key := strings.TrimSpace(s)
	for _, a := range ActivityTypes {
		if strings.EqualFold(key, string(a)) || strings.EqualFold(key, displayNames[a]) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// Training представляет доменную модель тренировки.
// Пользователь является внешней ссылкой, удаление тренировки его не затрагивает.
type Training struct {
	ID           int64            // Идентификатор (0, пока тренировка не сохранена)
	UserID       int64            // Идентификатор пользователя
	User         *userdomain.User // Разрешённый пользователь (заполняется при чтении/записи)
	StartTime    time.Time
	EndTime      time.Time
	ActivityType ActivityType
	Distance     float64
	AverageSpeed float64
}

// IsPersisted возвращает true, если хранилище уже назначило тренировке идентификатор.
func (t *Training) IsPersisted() bool {
	return t.ID != 0
}

// AssignUser привязывает тренировку к пользователю.
func (t *Training) AssignUser(u *userdomain.User) {
	t.User = u
	t.UserID = u.ID
}
