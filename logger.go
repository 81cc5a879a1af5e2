package access

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with access-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSystem adds a system name field to the logger.
func (l *Logger) WithSystem(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("system", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogAmbiguity logs a pair of unordered units of work with conflicting access.
func (l *Logger) LogAmbiguity(ctx context.Context, first, second string, conflicts Conflicts) {
	l.WarnContext(ctx, "ambiguous access",
		"first", first,
		"second", second,
		"conflicts", conflicts.String(),
	)
}

// LogAmbiguityScan logs the outcome of an ambiguity scan.
func (l *Logger) LogAmbiguityScan(ctx context.Context, pairs, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ambiguity scan failed",
			"pairs", pairs,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ambiguity scan completed",
			"pairs", pairs,
			"ambiguities", found,
		)
	}
}

// LogStages logs a stage plan.
func (l *Logger) LogStages(ctx context.Context, stages, systems int) {
	l.DebugContext(ctx, "stages planned",
		"stages", stages,
		"systems", systems,
	)
}
