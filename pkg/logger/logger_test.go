package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Info("skipped", nil)
	require.Empty(t, buf.String())

	l.Warn("kept", map[string]any{"b": 2, "a": 1})
	require.Contains(t, buf.String(), "WARN: kept a=1 b=2")
}

func TestLogger_RedactsEmailFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Debug("creating user", map[string]any{"email": "john.doe@example.com", "user_id": 7})
	out := buf.String()
	require.Contains(t, out, "email=jo***@example.com")
	require.Contains(t, out, "user_id=7")
	require.NotContains(t, out, "john.doe")
}

func TestRedactEmail(t *testing.T) {
	require.Equal(t, "jo***@example.com", RedactEmail("john@example.com"))
	require.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	require.Equal(t, "fragment", RedactEmail("fragment"))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel(" error "))
	require.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
