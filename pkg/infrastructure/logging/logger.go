package logging

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

// Logger is the minimal structured logging interface used across the module
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (n *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// Level orders log severities
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name case-insensitively
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level: %s (expected debug, info, warn, or error)", s)
	}
}

// StdLogger writes "LEVEL msg key=value ..." lines through the standard
// library logger. Fields are written in key order so output is stable.
type StdLogger struct {
	logger *log.Logger
	level  Level
}

// NewStdLogger creates a logger writing to w at or above level
func NewStdLogger(w io.Writer, level Level) *StdLogger {
	return &StdLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.write(InfoLevel, msg, fields)
}

func (l *StdLogger) Error(msg string, fields map[string]interface{}) {
	l.write(ErrorLevel, msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(WarnLevel, msg, fields)
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(DebugLevel, msg, fields)
}

func (l *StdLogger) write(level Level, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}
	l.logger.Print(formatLine(level, msg, fields))
}

func formatLine(level Level, msg string, fields map[string]interface{}) string {
	var b strings.Builder
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// OrNoOp returns logger, or a NoOpLogger when logger is nil
func OrNoOp(logger Logger) Logger {
	if logger == nil {
		return &NoOpLogger{}
	}
	return logger
}
