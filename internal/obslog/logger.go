// Package obslog configures the structured logger shared across the
// pipeline, CLI, watcher, and MCP server.
package obslog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level mirrors slog's levels under names that read naturally in config
// files.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the slog handler implementation.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config controls logger construction.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Default returns the config used when no explicit logging section is
// configured: text handler, info level, stderr.
func Default() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New builds a slog.Logger from cfg, filling in defaults for zero fields.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

func parseLevel(l Level) slog.Level {
	switch strings.ToLower(string(l)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault installs cfg as slog's package-level default logger, used by
// code paths (third-party middleware, init-time diagnostics) that can't be
// handed a logger explicitly.
func SetDefault(cfg Config) {
	slog.SetDefault(New(cfg))
}
