package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New builds the process logger. format is "text" or "json" (default text).
func New(w io.Writer, level, format, version string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: strings.EqualFold(level, "debug"),
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		"service", "envport",
		"version", version,
		"pid", os.Getpid(),
	)
}

// Resolve returns logger, or slog.Default() when logger is nil.
func Resolve(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
