// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the config name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// ParseLevel maps a config value to a Level. Accepts the level names plus
// the common aliases "quiet", "info" and "debug".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger is a leveled logger. All methods are safe for concurrent use.
// Loggers derived with With share the level of their root.
type Logger struct {
	lvl    *levelVar
	prefix string
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

type levelVar struct {
	mu    sync.RWMutex
	level Level
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ltime

	return &Logger{
		lvl:    &levelVar{level: level},
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// With returns a logger that tags every message with component.
func (l *Logger) With(component string) *Logger {
	child := *l
	child.prefix = l.prefix + component + ": "
	return &child
}

// SetLevel changes the log level at runtime, for this logger and every
// logger derived from the same root.
func (l *Logger) SetLevel(level Level) {
	l.lvl.mu.Lock()
	defer l.lvl.mu.Unlock()
	l.lvl.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.lvl.mu.RLock()
	defer l.lvl.mu.RUnlock()
	return l.lvl.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(l.debug, LevelVerbose, format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(l.info, LevelNormal, format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(l.warn, LevelNormal, format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(l.errLog, LevelNormal, format, args)
}

func (l *Logger) output(dst *log.Logger, min Level, format string, args []any) {
	l.lvl.mu.RLock()
	defer l.lvl.mu.RUnlock()
	if l.lvl.level >= min {
		dst.Output(3, l.prefix+fmt.Sprintf(format, args...))
	}
}
