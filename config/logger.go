package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLoggerTo returns a slog.Logger writing to w. Production uses the JSON
// handler; otherwise text. LOG_LEVEL may be: debug, info, warn, error (default: info).
// The terminal client logs to stderr so stdout carries only the conference URL.
func NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
