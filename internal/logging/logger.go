// Package logging writes handshake events as structured log entries.
//
// Every entry passes through a Redactor before it is rendered: SRP values (a, b, x, S, K, the
// verifier and both proofs) and anything that looks like key material never reach the output,
// whichever field they are logged under. Errors go to stderr, everything else to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log entry.
type LogLevel string

// Log severity levels, least severe first.
const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var levels = []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}

// LogFormat represents the output format for log entries.
type LogFormat string

// Log output formats.
const (
	// FormatJSON writes one JSON object per line (default).
	FormatJSON LogFormat = "json"
	// FormatHuman writes "[time] level: event key=value ..." lines.
	FormatHuman LogFormat = "human"
)

// ParseLevel converts a configured level name into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(s))
	if !slices.Contains(levels, level) {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// ParseFormat converts a configured format name into a LogFormat.
func ParseFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatHuman:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q", s)
	}
}

// Logger writes redacted, structured log entries.
type Logger struct {
	level    LogLevel
	format   LogFormat
	redactor *Redactor
	now      func() time.Time

	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// logEntry is the JSON shape of a log entry.
type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a Logger writing to os.Stdout and os.Stderr.
func New(level LogLevel, format LogFormat) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		now:      time.Now,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// FromConfig creates a Logger from configured level and format names.
func FromConfig(level, format string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return New(lvl, f), nil
}

// SetOutput redirects the logger, e.g. to keep stdout free for a report.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// Redactor returns the redactor applied to every entry, so callers can register extra keys.
func (l *Logger) Redactor() *Redactor {
	return l.redactor
}

// Debug logs a debug-level event.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level event.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level event.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level event to stderr.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

// WithFields returns a logger that adds fields to every entry, typically client_id and handshake_id.
func (l *Logger) WithFields(fields map[string]any) *ContextLogger {
	return &ContextLogger{logger: l, fields: fields}
}

func (l *Logger) enabled(level LogLevel) bool {
	return slices.Index(levels, level) >= slices.Index(levels, l.level)
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]any) {
	if !l.enabled(level) {
		return
	}

	entry := logEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   msg,
		Fields:    l.redactor.RedactFields(fields),
	}

	var line string
	switch l.format {
	case FormatHuman:
		line = renderHuman(entry)
	default:
		line = renderJSON(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.stdout
	if level == LevelError {
		w = l.stderr
	}
	_, _ = io.WriteString(w, line)
}

func renderJSON(entry logEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			entry.Timestamp, err.Error())
	}
	return string(data) + "\n"
}

func renderHuman(entry logEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message)
	for _, k := range slices.Sorted(maps.Keys(entry.Fields)) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	b.WriteString("\n")
	return b.String()
}

// mergeFields merges field maps; later maps win.
func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	return merged
}

// ContextLogger is a Logger bound to a set of fields.
type ContextLogger struct {
	logger *Logger
	fields map[string]any
}

// WithFields returns a context logger carrying both the existing and the additional fields.
func (cl *ContextLogger) WithFields(fields map[string]any) *ContextLogger {
	return &ContextLogger{logger: cl.logger, fields: mergeFields(cl.fields, fields)}
}

// Debug logs a debug-level event with the bound fields.
func (cl *ContextLogger) Debug(msg string, fields ...map[string]any) {
	cl.log(LevelDebug, msg, fields)
}

// Info logs an info-level event with the bound fields.
func (cl *ContextLogger) Info(msg string, fields ...map[string]any) {
	cl.log(LevelInfo, msg, fields)
}

// Warn logs a warn-level event with the bound fields.
func (cl *ContextLogger) Warn(msg string, fields ...map[string]any) {
	cl.log(LevelWarn, msg, fields)
}

// Error logs an error-level event with the bound fields.
func (cl *ContextLogger) Error(msg string, fields ...map[string]any) {
	cl.log(LevelError, msg, fields)
}

func (cl *ContextLogger) log(level LogLevel, msg string, fields []map[string]any) {
	cl.logger.log(level, msg, mergeFields(append([]map[string]any{cl.fields}, fields...)...))
}
