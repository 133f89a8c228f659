package logger

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// HclogLogger adapts a hashicorp/go-hclog logger to Logger.
type HclogLogger struct {
	logger hclog.Logger
}

var _ Logger = (*HclogLogger)(nil)

// NewHclog wraps l. A nil l yields a logger that discards everything.
func NewHclog(l hclog.Logger) Logger {
	if l == nil {
		l = hclog.NewNullLogger()
	}

	return &HclogLogger{logger: l}
}

func (l *HclogLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *HclogLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *HclogLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *HclogLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *HclogLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
	os.Exit(1)
}

func (l *HclogLogger) With(keyValues ...any) Logger {
	return &HclogLogger{logger: l.logger.With(keyValues...)}
}

func (l *HclogLogger) Level() Level {
	switch l.logger.GetLevel() {
	case hclog.Trace, hclog.Debug:
		return DebugLevel
	case hclog.Info, hclog.NoLevel:
		return InfoLevel
	case hclog.Warn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func (l *HclogLogger) SetLevel(level Level) {
	l.logger.SetLevel(toHclogLevel(level))
}

func toHclogLevel(level Level) hclog.Level {
	switch level {
	case DebugLevel:
		return hclog.Debug
	case InfoLevel:
		return hclog.Info
	case WarnLevel:
		return hclog.Warn
	default:
		return hclog.Error
	}
}
