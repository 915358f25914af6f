package devbitmap

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitmap-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithBase adds the bitmap base address to the logger.
// The Log helpers use it so every entry carries the same "base" field.
func (l *Logger) WithBase(base uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("base", base),
	}
}

// LogRead logs a read operation.
func (l *Logger) LogRead(ctx context.Context, base uint64, r Range, err error) {
	if err != nil {
		l.WithBase(base).ErrorContext(ctx, "bitmap read failed",
			"start", r.Start,
			"end", r.End,
			"error", err,
		)
		return
	}
	l.WithBase(base).DebugContext(ctx, "bitmap read completed",
		"start", r.Start,
		"end", r.End,
	)
}

// LogWrite logs a range write.
func (l *Logger) LogWrite(ctx context.Context, base uint64, r Range, value bool, err error) {
	if err != nil {
		l.WithBase(base).ErrorContext(ctx, "bitmap write failed",
			"start", r.Start,
			"end", r.End,
			"value", value,
			"error", err,
		)
		return
	}
	l.WithBase(base).DebugContext(ctx, "bitmap write completed",
		"start", r.Start,
		"end", r.End,
		"value", value,
	)
}

// LogScan logs a scan (All, Find, Search, Count, Collect).
func (l *Logger) LogScan(ctx context.Context, op string, base uint64, r Range, matches int, err error) {
	if err != nil {
		l.WithBase(base).ErrorContext(ctx, "bitmap scan failed",
			"op", op,
			"start", r.Start,
			"end", r.End,
			"error", err,
		)
		return
	}
	l.WithBase(base).DebugContext(ctx, "bitmap scan completed",
		"op", op,
		"start", r.Start,
		"end", r.End,
		"matches", matches,
	)
}
