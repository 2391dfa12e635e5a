// Package logger builds the structured loggers used across the SDK and keeps
// a process-wide default for the component helpers (InfoC, InfoCF, ...).
//
// Libraries take a *slog.Logger explicitly; the helpers are for binaries and
// composition code that log on behalf of a named component.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates a logger writing to w at level in the given format.
func New(w io.Writer, level slog.Level, format Format) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logger: unknown format %q", format)
	}
}

// ParseLevel accepts debug, info, warn (or warning) and error, case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Component returns l tagged with a component attribute.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With("component", name)
}

// ---------------------------------------------------------------------------
// Default logger and component helpers
// ---------------------------------------------------------------------------

var std atomic.Pointer[slog.Logger]

// SetDefault replaces the logger used by the component helpers.
func SetDefault(l *slog.Logger) {
	if l != nil {
		std.Store(l)
	}
}

// Default returns the logger used by the component helpers (slog.Default
// until SetDefault is called).
func Default() *slog.Logger {
	if l := std.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func DebugC(component, msg string) { DebugCF(component, msg, nil) }
func InfoC(component, msg string)  { InfoCF(component, msg, nil) }
func WarnC(component, msg string)  { WarnCF(component, msg, nil) }
func ErrorC(component, msg string) { ErrorCF(component, msg, nil) }

func DebugCF(component, msg string, fields map[string]interface{}) {
	log(slog.LevelDebug, component, msg, fields)
}

func InfoCF(component, msg string, fields map[string]interface{}) {
	log(slog.LevelInfo, component, msg, fields)
}

func WarnCF(component, msg string, fields map[string]interface{}) {
	log(slog.LevelWarn, component, msg, fields)
}

func ErrorCF(component, msg string, fields map[string]interface{}) {
	log(slog.LevelError, component, msg, fields)
}

func log(level slog.Level, component, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2+2*len(keys))
	args = append(args, "component", component)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	Default().Log(context.Background(), level, msg, args...)
}
