package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.RelayEnabled())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
relay:
  nats_url: nats://127.0.0.1:4222
cards:
  template_dir: /etc/kook/cards
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Relay.NATSURL)
	assert.Equal(t, "kook", cfg.Relay.SubjectPrefix, "unset keys keep defaults")
	assert.Equal(t, "/etc/kook/cards", cfg.Cards.TemplateDir)
	assert.True(t, cfg.RelayEnabled())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\nrelay:\n  subject_prefix: bots\n")
	t.Setenv("KOOK_LOG_LEVEL", "warn")
	t.Setenv("KOOK_RELAY_NATS_URL", "nats://broker:4222")
	t.Setenv("KOOK_CARD_TEMPLATE_DIR", "/srv/cards")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "nats://broker:4222", cfg.Relay.NATSURL)
	assert.Equal(t, "bots", cfg.Relay.SubjectPrefix)
	assert.Equal(t, "/srv/cards", cfg.Cards.TemplateDir)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "log: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "unknown level")

	_, err = Load(writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "unknown log format")

	_, err = Load(writeConfig(t, "relay:\n  nats_url: nats://x\n  subject_prefix: \"\"\n"))
	assert.ErrorContains(t, err, "subject_prefix")
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kook.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "error"

[relay]
nats_url = "nats://127.0.0.1:4222"
subject_prefix = "bots"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Relay.NATSURL)
	assert.Equal(t, "bots", cfg.Relay.SubjectPrefix)

	require.NoError(t, os.WriteFile(path, []byte("[log\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
