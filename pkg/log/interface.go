// Package log provides a structured logging interface for dtforest estimators.
//
// The interface is slog-compatible so the backend can be swapped: the default
// backend is zerolog (see zerolog.go), and SetupLogger installs a log/slog JSON
// handler formatted for Cloud Logging.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "DecisionTreeClassifier",
//	)
//	logger.Info("Tree grown",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 20,
//	    log.TreeDepthKey, 3,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. Error treats a leading error value
// specially: it is logged under the "error" key together with its stack trace
// when the backend can extract one.
type Logger interface {
	// Debug logs diagnostic detail such as per-node split decisions.
	Debug(msg string, fields ...any)

	// Info logs operational events such as a finished Fit.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop training or prediction.
	Warn(msg string, fields ...any)

	// Error logs failures. The first field may be an error value.
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
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

// LoggerProvider creates loggers; it lets tests inject a TestLoggerProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers created by this provider.
	SetLevel(level Level)
}
