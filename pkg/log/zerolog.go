package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

func init() {
	// Route engine warnings (convergence, degraded diagnostics) through
	// zerolog so they carry their structured fields.
	regressErrors.SetZerologWarnFunc(func(warning error) {
		mu.RLock()
		logger := root
		mu.RUnlock()

		evt := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			evt = evt.Object("warning", obj)
		}
		evt.Msg(warning.Error())
	})
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{zl: root}
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{zl: root.With().Str("logger", name).Logger()}
}

// SetLevel sets the minimum level emitted by loggers created afterwards.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(toZerologLevel(level))
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Output(w)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl     zerolog.Logger
	fields []any
}

func (l *zerologLogger) Debug(msg string, fields ...any) { l.emit(l.zl.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { l.emit(l.zl.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { l.emit(l.zl.Warn(), msg, fields) }
func (l *zerologLogger) Error(msg string, fields ...any) { l.emit(l.zl.Error(), msg, fields) }

func (l *zerologLogger) With(fields ...any) Logger {
	combined := make([]any, 0, len(l.fields)+len(fields))
	combined = append(combined, l.fields...)
	combined = append(combined, fields...)
	return &zerologLogger{zl: l.zl, fields: combined}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func (l *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if len(l.fields) > 0 {
		e = e.Fields(l.fields)
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}
