// Package logging provides structured logging for the template engine
// and its CLI, backed by log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level mirrors slog levels with string parsing for configuration.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel reads a level name; unknown names default to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds logger configuration.
type Config struct {
	Level  Level
	Format string // "json" or "text"
	Output io.Writer
}

// Logger is a leveled, component-scoped logger.
type Logger struct {
	sl        *slog.Logger
	component string
}

// New creates a logger from config. A nil output writes to stderr.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slog()}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &Logger{sl: slog.New(handler)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{sl: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// WithComponent returns a logger tagging every record with a component
// name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{sl: l.sl, component: component}
}

// Debug logs at debug level with key/value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, l.args(args)...)
}

// Info logs at info level with key/value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.sl.Info(msg, l.args(args)...)
}

// Warn logs at warn level with key/value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.sl.Warn(msg, l.args(args)...)
}

// Error logs at error level, recording err when non-nil.
func (l *Logger) Error(err error, msg string, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.sl.Error(msg, l.args(args)...)
}

func (l *Logger) args(args []any) []any {
	if l.component == "" {
		return args
	}
	return append([]any{"component", l.component}, args...)
}
