package telegram

import (
	"io"

	"github.com/amarnathcjd/tghelper/internal/utils"
)

// Logger interface allows users to provide custom logging implementations
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithError(err error) Logger
	WithPrefix(prefix string) Logger

	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type LoggerConfig struct {
	// Level name: trace, debug, info, warn, error, disable. Default: info
	Level      string
	Prefix     string
	Output     io.Writer
	Color      bool
	ShowCaller bool
	JSONOutput bool
}

func NewLogger(config LoggerConfig) Logger {
	internal := &utils.LoggerConfig{
		Level:      utils.ParseLevel(config.Level),
		Prefix:     config.Prefix,
		Output:     config.Output,
		Color:      config.Color,
		ShowCaller: config.ShowCaller,
	}
	if config.JSONOutput {
		internal.Formatter = &utils.JSONFormatter{}
	}
	return &loggerAdapter{internal: utils.NewLoggerWithConfig(internal)}
}

func NewDefaultLogger(prefix string) Logger {
	return &loggerAdapter{internal: utils.NewLogger(prefix)}
}

type loggerAdapter struct {
	internal *utils.Logger
}

func (l *loggerAdapter) WithField(key string, value any) Logger {
	return &loggerAdapter{internal: l.internal.WithField(key, value)}
}

func (l *loggerAdapter) WithFields(fields map[string]any) Logger {
	return &loggerAdapter{internal: l.internal.WithFields(fields)}
}

func (l *loggerAdapter) WithError(err error) Logger {
	return &loggerAdapter{internal: l.internal.WithError(err)}
}

func (l *loggerAdapter) WithPrefix(prefix string) Logger {
	return &loggerAdapter{internal: l.internal.WithPrefix(prefix)}
}

func (l *loggerAdapter) Trace(msg string, args ...any) { l.internal.Trace(msg, args...) }
func (l *loggerAdapter) Debug(msg string, args ...any) { l.internal.Debug(msg, args...) }
func (l *loggerAdapter) Info(msg string, args ...any)  { l.internal.Info(msg, args...) }
func (l *loggerAdapter) Warn(msg string, args ...any)  { l.internal.Warn(msg, args...) }
func (l *loggerAdapter) Error(msg string, args ...any) { l.internal.Error(msg, args...) }
