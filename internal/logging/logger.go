// Package logging provides structured logging configuration using log/slog.
//
// Batch runs carry a run id in their context; loggers obtained through
// FromContext include it in every entry so all lines of one run can be
// correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type runIDKey struct{}

// Setup configures the global slog logger based on level and format,
// writing to stderr so stdout stays free for command output.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
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

// WithRunID returns a context carrying the batch run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// FromContext returns the default logger enriched with the run id found
// in ctx, if any.
//
// Usage:
//
//	logger := logging.FromContext(ctx)
//	logger.Info("row exported", "row", r, "path", path)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := RunID(ctx); id != "" {
		logger = logger.With("run_id", id)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
