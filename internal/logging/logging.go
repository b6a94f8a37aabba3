package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

type Config struct {
	Component string
	Level     string
	// File enables a rotated copy of the log next to stdout, empty disables it.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init builds the JSON logger, installs it as the slog default and returns it.
// The returned closer flushes the rotated file.
func Init(cfg Config) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, err
		}

		rot := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 50),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 7),
		}
		w = io.MultiWriter(os.Stdout, rot)
		closer = rot
	}

	logger := New(w, cfg.Level).With("component", cfg.Component)
	slog.SetDefault(logger)

	return logger, closer, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// WithCtx stores a request-scoped logger in ctx.
func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx fetches a logger from ctx or falls back to the default one.
func FromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
