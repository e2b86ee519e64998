// Package logging provides leveled key/value logging for findloop. Records are
// rendered through log/slog with a tint handler on stderr, so stdout stays
// reserved for search results.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose search progress.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for skipped inputs and recoverable problems.
	LevelWarn
	// LevelError is for failures that abort a command.
	LevelError
)

// Levels returns every Level from most to least verbose.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lowercase level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel maps a level name (debug, info, warn, error) to a Level.
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
	default:
		return LevelWarn, fmt.Errorf("invalid log level %q (want one of %s)", s, levelList())
	}
}

// levelList joins the level names for messages and help text.
func levelList() string {
	names := make([]string, 0, len(levelNames))
	for _, l := range Levels() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

// LevelUsage describes the accepted level names, for flag help.
func LevelUsage() string {
	return "log level: " + levelList()
}

// sink is shared between a logger and the children derived from it, so level
// and output changes apply to the whole family.
type sink struct {
	mu      sync.RWMutex
	level   slog.LevelVar
	handler slog.Handler
}

func newSink(w io.Writer, level Level) *sink {
	s := &sink{}
	s.level.Set(level.slogLevel())
	s.handler = newHandler(w, &s.level)
	return s
}

func newHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	})
}

// isTerminal reports whether w is an interactive terminal. Buffers and
// other non-file writers get plain output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Logger provides structured logging with context.
type Logger struct {
	sink   *sink
	fields []any
}

var (
	// defaultLogger is the package-level logger.
	defaultLogger = New()
)

// New creates a Logger writing to stderr at warn level.
func New() *Logger {
	return &Logger{sink: newSink(os.Stderr, LevelWarn)}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.level.Set(level.slogLevel())
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level.slogLevel() >= l.sink.level.Level()
}

// SetOutput redirects log records to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.handler = newHandler(w, &l.sink.level)
}

// With returns a new Logger with an additional context field.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]any, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	fields = append(fields, key, value)
	return &Logger{sink: l.sink, fields: fields}
}

// WithFields returns a new Logger with multiple additional context fields.
// Map iteration order is not stable, so fields are not ordered.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make([]any, 0, len(l.fields)+2*len(fields))
	merged = append(merged, l.fields...)
	for k, v := range fields {
		merged = append(merged, k, v)
	}
	return &Logger{sink: l.sink, fields: merged}
}

func (l *Logger) log(level Level, msg string, keyVals ...any) {
	l.sink.mu.RLock()
	handler := l.sink.handler
	l.sink.mu.RUnlock()

	args := make([]any, 0, len(l.fields)+len(keyVals))
	args = append(args, l.fields...)
	args = append(args, keyVals...)

	slog.New(handler).Log(context.Background(), level.slogLevel(), msg, args...)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...any) {
	l.log(LevelDebug, msg, keyVals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...any) {
	l.log(LevelInfo, msg, keyVals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...any) {
	l.log(LevelWarn, msg, keyVals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...any) {
	l.log(LevelError, msg, keyVals...)
}

// Package-level functions that use the default logger.

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// With returns a new Logger with additional context from the default logger.
func With(key string, value any) *Logger {
	return defaultLogger.With(key, value)
}

// WithFields returns a new Logger with multiple additional context fields.
func WithFields(fields map[string]any) *Logger {
	return defaultLogger.WithFields(fields)
}
