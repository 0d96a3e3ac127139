package logging

import (
	"fmt"
	"log"
	"strings"
)

// Level orders log messages by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// CurrentLevel drops every message below it.
var CurrentLevel = LevelWarn

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
	}
	return "UNKNOWN"
}

// ParseLevel maps a flag value such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// SetLevel changes the minimum level that reaches the log output.
func SetLevel(l Level) { CurrentLevel = l }

// Enabled reports whether messages at level l are currently written.
func Enabled(l Level) bool { return l >= CurrentLevel }

func logMessage(level Level, format string, v ...any) {
	if !Enabled(level) {
		return
	}
	log.Printf("["+level.String()+"] "+format, v...)
}

func Debug(format string, v ...any) { logMessage(LevelDebug, format, v...) }
func Info(format string, v ...any)  { logMessage(LevelInfo, format, v...) }
func Warn(format string, v ...any)  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...any) { logMessage(LevelError, format, v...) }
