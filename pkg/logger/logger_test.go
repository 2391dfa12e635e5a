package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelWarn, FormatJSON)
	require.NoError(t, err)

	l.Info("dropped")
	Component(l, "relay").Warn("kept", "subject", "kook.user.online")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "relay", rec["component"])
	assert.Equal(t, "kook.user.online", rec["subject"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelInfo, "")
	require.NoError(t, err)
	l.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	_, err = New(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestComponentHelpers(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelDebug, FormatJSON)
	require.NoError(t, err)
	SetDefault(l)
	SetDefault(nil)

	InfoCF("console", "event dispatched", map[string]interface{}{"event": "user.online", "handlers": 2})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "console", rec["component"])
	assert.Equal(t, "user.online", rec["event"])
	assert.Equal(t, float64(2), rec["handlers"])

	buf.Reset()
	ErrorC("console", "boom")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
