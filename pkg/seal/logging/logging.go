package logging

import (
	"context"
	"log/slog"
)

// Logger receives the few records sealgo emits. Every method takes the
// context the triggering call ran under.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New wraps logger, or slog.Default() when logger is nil.
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return adapter{l: logger}
}

// Discard drops everything.
func Discard() Logger {
	return adapter{l: slog.New(slog.DiscardHandler)}
}

type adapter struct {
	l *slog.Logger
}

func (a adapter) log(ctx context.Context, level slog.Level, msg string, args []any) {
	a.l.Log(ctx, level, msg, args...)
}

func (a adapter) Debug(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelDebug, msg, args)
}

func (a adapter) Info(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelInfo, msg, args)
}

func (a adapter) Warn(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelWarn, msg, args)
}

func (a adapter) Error(ctx context.Context, msg string, args ...any) {
	a.log(ctx, slog.LevelError, msg, args)
}

func (a adapter) With(args ...any) Logger {
	return adapter{l: a.l.With(args...)}
}

const redacted = "[redacted]"

// Redacted stands in for key material or decrypted data under key.
func Redacted(key string) slog.Attr { return slog.String(key, redacted) }

// Placeholder is the value Redacted logs.
func Placeholder() string { return redacted }
