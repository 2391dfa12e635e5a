// Package config loads kookctl and SDK settings: built-in defaults, then an
// optional YAML (or .toml) file, then KOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kookbot/kook-go/pkg/logger"
)

// EnvPrefix prefixes every environment key.
const EnvPrefix = "KOOK_"

// Config is the root configuration.
type Config struct {
	Log   LogConfig   `yaml:"log" toml:"log" envPrefix:"LOG_"`
	Relay RelayConfig `yaml:"relay" toml:"relay" envPrefix:"RELAY_"`
	Cards CardsConfig `yaml:"cards" toml:"cards" envPrefix:"CARD_"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`
	Format string `yaml:"format" toml:"format" env:"FORMAT"`
}

// RelayConfig configures mirroring of dispatched occurrences to NATS. An empty
// NATSURL disables the relay.
type RelayConfig struct {
	NATSURL       string `yaml:"nats_url" toml:"nats_url" env:"NATS_URL"`
	SubjectPrefix string `yaml:"subject_prefix" toml:"subject_prefix" env:"SUBJECT_PREFIX"`
}

// CardsConfig locates YAML card templates.
type CardsConfig struct {
	TemplateDir string `yaml:"template_dir" toml:"template_dir" env:"TEMPLATE_DIR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info", Format: string(logger.FormatText)},
		Relay: RelayConfig{SubjectPrefix: "kook"},
	}
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays KOOK_* environment variables onto target. Unset
// variables leave the current values in place.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate checks that the log settings are usable.
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch logger.Format(strings.ToLower(c.Log.Format)) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Relay.NATSURL != "" && c.Relay.SubjectPrefix == "" {
		return errors.New("config: relay.subject_prefix is required when relay.nats_url is set")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (slog.Level, error) {
	return logger.ParseLevel(c.Log.Level)
}

// RelayEnabled reports whether occurrences are mirrored to NATS.
func (c Config) RelayEnabled() bool {
	return c.Relay.NATSURL != ""
}
