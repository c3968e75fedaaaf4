// Package log provides a structured logging interface for the regression
// engine, backed by zerolog.
//
// The interface is slog-compatible: key-value field pairs, level filtering,
// and contextual loggers via With. Standard attribute keys for analysis
// operations live in attributes.go; using them keeps fit/evaluate/render logs
// uniform and filterable.
//
// Example:
//
//	logger := log.GetLoggerWithName("linear").With(
//	    log.ModelNameKey, "Ridge",
//	)
//	logger.Info("Training completed",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 80,
//	    log.FeaturesKey, 3,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's
// log/slog. Fields are alternating key-value pairs.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated on
	// every subsequent log record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
