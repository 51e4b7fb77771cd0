// Package logging provides leveled, key/value logging for context-engine.
//
// Output goes to stderr so it never mixes with rendered workflow text on
// stdout. The default level is WARN; the CLI raises it with -v or the
// CONTEXT_ENGINE_LOG_LEVEL environment variable.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// EnvLevel names the environment variable consulted by LevelFromEnv.
const EnvLevel = "CONTEXT_ENGINE_LOG_LEVEL"

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose tracing of config and document resolution.
	LevelDebug Level = iota
	// LevelInfo is for state changes such as marker rewrites.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failures surfaced to the caller.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", name)
}

// Logger writes one line per entry: LEVEL: message | k=v k=v
type Logger struct {
	mu       *sync.Mutex
	minLevel Level
	fields   map[string]any
	out      io.Writer
	now      func() time.Time
}

var defaultLogger = New(os.Stderr)

// New creates a Logger writing to w at WARN level.
func New(w io.Writer) *Logger {
	return &Logger{
		mu:       &sync.Mutex{},
		minLevel: LevelWarn,
		fields:   map[string]any{},
		out:      w,
		now:      time.Now,
	}
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// SetOutput redirects the logger. Children created by With share the change
// only if they were derived after this call.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.minLevel
}

// With returns a child logger carrying additional key/value pairs.
func (l *Logger) With(keyVals ...any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]any, len(l.fields)+len(keyVals)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	addPairs(fields, keyVals)

	return &Logger{
		mu:       l.mu,
		minLevel: l.minLevel,
		fields:   fields,
		out:      l.out,
		now:      l.now,
	}
}

func (l *Logger) write(level Level, msg string, keyVals []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minLevel || l.out == nil {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(keyVals)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	addPairs(fields, keyVals)

	var sb strings.Builder
	sb.WriteString(l.now().Format("2006/01/02 15:04:05 "))
	sb.WriteString(level.String())
	sb.WriteString(": ")
	sb.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(formatValue(fields[k]))
		}
	}
	sb.WriteString("\n")

	_, _ = io.WriteString(l.out, sb.String())
}

func addPairs(dst map[string]any, keyVals []any) {
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			dst[key] = keyVals[i+1]
		}
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...any) { l.write(LevelDebug, msg, keyVals) }

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...any) { l.write(LevelInfo, msg, keyVals) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...any) { l.write(LevelWarn, msg, keyVals) }

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...any) { l.write(LevelError, msg, keyVals) }

// SetLevel sets the level of the default logger.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// SetOutput redirects the default logger.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

// LevelFromEnv applies CONTEXT_ENGINE_LOG_LEVEL to the default logger when set.
func LevelFromEnv() error {
	name := os.Getenv(EnvLevel)
	if name == "" {
		return nil
	}
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	defaultLogger.SetLevel(level)
	return nil
}

// With returns a child of the default logger.
func With(keyVals ...any) *Logger { return defaultLogger.With(keyVals...) }

// Debug logs at debug level using the default logger.
func Debug(msg string, keyVals ...any) { defaultLogger.Debug(msg, keyVals...) }

// Info logs at info level using the default logger.
func Info(msg string, keyVals ...any) { defaultLogger.Info(msg, keyVals...) }

// Warn logs at warn level using the default logger.
func Warn(msg string, keyVals ...any) { defaultLogger.Warn(msg, keyVals...) }

// Error logs at error level using the default logger.
func Error(msg string, keyVals ...any) { defaultLogger.Error(msg, keyVals...) }
