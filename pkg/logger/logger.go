package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в usecase'ах, handler'ах и middleware.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// Level задаёт минимальный уровень сообщений, попадающих в лог.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel разбирает уровень из строки (debug/info/warn/error).
// Неизвестные значения трактуются как info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type stdLogger struct {
	level Level
	out   *log.Logger
}

// New возвращает логгер на базе стандартного log.Logger с фильтрацией по уровню.
func New(level Level, w io.Writer) Logger {
	return &stdLogger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// Default возвращает логгер уровня info, пишущий в stderr.
func Default() Logger {
	return New(LevelInfo, os.Stderr)
}

// Discard возвращает логгер, который ничего не пишет. Удобен в тестах.
func Discard() Logger {
	return New(LevelError+1, io.Discard)
}

func (l *stdLogger) Debug(msg string, fields map[string]any) { l.log(LevelDebug, msg, fields) }
func (l *stdLogger) Info(msg string, fields map[string]any)  { l.log(LevelInfo, msg, fields) }
func (l *stdLogger) Warn(msg string, fields map[string]any)  { l.log(LevelWarn, msg, fields) }
func (l *stdLogger) Error(msg string, fields map[string]any) { l.log(LevelError, msg, fields) }

func (l *stdLogger) log(level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(levelNames[level])
	b.WriteString(": ")
	b.WriteString(msg)

	// Ключи сортируем, чтобы строки лога были стабильными
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		val := fmt.Sprintf("%v", fields[k])
		if strings.Contains(strings.ToLower(k), "email") {
			val = RedactEmail(val)
		}
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(val)
	}

	l.out.Print(b.String())
}

// RedactEmail маскирует email для безопасного логирования.
// "john.doe@example.com" → "jo***@example.com", короткие имена маскируются целиком.
// Значения без '@' (например, фрагменты поиска) возвращаются как есть.
func RedactEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	name, domain := email[:at], email[at+1:]
	if len(name) > 2 {
		return name[:2] + "***@" + domain
	}
	return "***@" + domain
}
