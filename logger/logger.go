// Package logger is the logging seam of go-msgframe. Framers and transports
// log through the Logger interface so an application can plug in whichever
// backend it already uses.
//
// Two backends ship with the package:
//
//   - NewSlog: log/slog, JSON to stdout, or a colored console handler when
//     the ENV environment variable is "development".
//   - NewHclog: wraps an existing hashicorp/go-hclog logger.
//
// Levels, from least to most severe: DebugLevel, InfoLevel, WarnLevel,
// ErrorLevel, FatalLevel.
package logger

// Level indicates the logging severity level.
type Level int8

const (
	// DebugLevel carries per-frame diagnostics such as resync flushes and
	// checksum mismatches. Usually disabled in production.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel reports conditions worth a look, e.g. a decoder rejecting a
	// validated payload.
	WarnLevel
	// ErrorLevel reports failures of the underlying transport.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return "unknown"
	}
}

// Logger defines a common interface for structured logging with key-value pairs.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel, then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger carrying the given key-values.
	// The parent is not affected.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level.
	Level() Level
	// SetLevel sets the minimum enabled level.
	SetLevel(level Level)
}
