// Package logging configures the debug log.
//
// User-facing output goes to stdout; the slog default logger carries the
// command trace into a rotating file so a failed sync can be diagnosed
// after the fact.
package logging

import (
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/p4son/git-p4son/internal/config"
)

// Setup routes the default slog logger to a rotating file and returns it.
func Setup(cfg config.LoggingConfig) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
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
