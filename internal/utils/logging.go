// Copyright (c) 2024 RoseLoverX

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	TraceLevel LogLevel = iota + 1
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	NoLevel
)

func (l LogLevel) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case NoLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps the textual level names used in env files
// (trace, debug, info, warn, error, disable) to a LogLevel.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "none", "disable", "disabled", "off":
		return NoLevel
	default:
		return InfoLevel
	}
}

var (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type LogFormatter interface {
	Format(entry *LogEntry) string
}

type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   LogLevel       `json:"level"`
	Message string         `json:"message"`
	Prefix  string         `json:"prefix,omitempty"`
	File    string         `json:"file,omitempty"`
	Line    int            `json:"line,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Error   error          `json:"error,omitempty"`
}

// sink is shared by a logger and every clone derived from it.
type sink struct {
	mu     sync.Mutex
	output io.Writer
}

type Logger struct {
	mu         sync.RWMutex
	level      LogLevel
	prefix     string
	out        *sink
	formatter  LogFormatter
	fields     map[string]any
	color      bool
	showCaller bool
}

type LoggerConfig struct {
	Level      LogLevel
	Prefix     string
	Output     io.Writer
	Formatter  LogFormatter
	Color      bool
	ShowCaller bool
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  InfoLevel,
		Output: os.Stdout,
		Color:  true,
	}
}

func NewLogger(prefix string) *Logger {
	config := DefaultConfig()
	config.Prefix = prefix
	return NewLoggerWithConfig(config)
}

func NewLoggerWithConfig(config *LoggerConfig) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Level == 0 {
		config.Level = InfoLevel
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	color := config.Color && isTerminal(config.Output)
	formatter := config.Formatter
	if formatter == nil {
		formatter = &TextFormatter{NoColor: !color}
	}

	return &Logger{
		level:      config.Level,
		prefix:     config.Prefix,
		out:        &sink{output: config.Output},
		formatter:  formatter,
		fields:     make(map[string]any),
		color:      color,
		showCaller: config.ShowCaller,
	}
}

func (l *Logger) Clone() *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	clone := &Logger{
		level:      l.level,
		prefix:     l.prefix,
		out:        l.out,
		formatter:  l.formatter,
		fields:     make(map[string]any, len(l.fields)),
		color:      l.color,
		showCaller: l.showCaller,
	}
	maps.Copy(clone.fields, l.fields)
	return clone
}

func (l *Logger) WithPrefix(prefix string) *Logger {
	clone := l.Clone()
	clone.prefix = prefix
	return clone
}

func (l *Logger) WithField(key string, value any) *Logger {
	clone := l.Clone()
	clone.fields[key] = value
	return clone
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	clone := l.Clone()
	maps.Copy(clone.fields, fields)
	return clone
}

func (l *Logger) WithError(err error) *Logger {
	clone := l.Clone()
	clone.fields["error"] = err
	return clone
}

func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level == 0 {
		level = InfoLevel
	}
	l.level = level
	return l
}

func (l *Logger) ShowCaller(enabled bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showCaller = enabled
	return l
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.RLock()
	if level < l.level {
		l.mu.RUnlock()
		return
	}
	showCaller := l.showCaller
	entry := &LogEntry{
		Time:   time.Now(),
		Level:  level,
		Prefix: l.prefix,
		Fields: make(map[string]any, len(l.fields)),
	}
	maps.Copy(entry.Fields, l.fields)
	formatter := l.formatter
	l.mu.RUnlock()

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	entry.Message = msg

	if err, ok := entry.Fields["error"].(error); ok {
		entry.Error = err
		delete(entry.Fields, "error")
	}

	if showCaller {
		var pcs [8]uintptr
		n := runtime.Callers(3, pcs[:])
		frames := runtime.CallersFrames(pcs[:n])
		for {
			frame, more := frames.Next()
			// skip the adapter in the public telegram package
			if !strings.HasSuffix(frame.File, "logging.go") {
				entry.File = filepath.Base(frame.File)
				entry.Line = frame.Line
				break
			}
			if !more {
				break
			}
		}
	}

	formatted := formatter.Format(entry)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	io.WriteString(l.out.output, formatted)
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return f == os.Stdout || f == os.Stderr
	}
	return false
}

func (l *Logger) Trace(msg string, args ...any) { l.log(TraceLevel, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(DebugLevel, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(InfoLevel, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(WarnLevel, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(ErrorLevel, msg, args...) }

// TextFormatter formats logs as human-readable text
type TextFormatter struct {
	NoColor         bool
	TimestampFormat string
}

func (f *TextFormatter) paint(b *strings.Builder, color, s string) {
	if f.NoColor || color == "" {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

func (f *TextFormatter) Format(entry *LogEntry) string {
	var b strings.Builder

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = "15:04:05.000"
	}
	f.paint(&b, colorDim, entry.Time.Format(timestampFormat))
	b.WriteString(" ")

	levelStr := entry.Level.String()
	if len(levelStr) < 5 {
		levelStr += strings.Repeat(" ", 5-len(levelStr))
	}
	f.paint(&b, f.levelColor(entry.Level), levelStr)
	b.WriteString(" ")

	if entry.Prefix != "" {
		f.paint(&b, colorBlue, entry.Prefix)
		b.WriteString(" ")
	}

	if entry.File != "" && entry.Line > 0 {
		f.paint(&b, colorDim, fmt.Sprintf("%s:%d", entry.File, entry.Line))
		b.WriteString(" ")
	}

	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(k)
			b.WriteString("=")
			f.paint(&b, colorCyan, fmt.Sprintf("%v", entry.Fields[k]))
		}
		b.WriteString("]")
	}

	if entry.Error != nil {
		b.WriteString(" ")
		f.paint(&b, colorRed, "error="+entry.Error.Error())
	}

	b.WriteString("\n")
	return b.String()
}

func (f *TextFormatter) levelColor(level LogLevel) string {
	switch level {
	case TraceLevel:
		return colorPurple
	case DebugLevel:
		return colorBlue
	case InfoLevel:
		return colorGreen
	case WarnLevel:
		return colorYellow
	case ErrorLevel:
		return colorRed + colorBold
	default:
		return ""
	}
}

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	TimestampFormat string
}

func (f *JSONFormatter) Format(entry *LogEntry) string {
	data := make(map[string]any, len(entry.Fields)+5)

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = time.RFC3339Nano
	}

	maps.Copy(data, entry.Fields)
	data["timestamp"] = entry.Time.Format(timestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if entry.Prefix != "" {
		data["prefix"] = entry.Prefix
	}
	if entry.File != "" {
		data["caller"] = fmt.Sprintf("%s:%d", entry.File, entry.Line)
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	output, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %v"}`+"\n", err)
	}
	return string(output) + "\n"
}
