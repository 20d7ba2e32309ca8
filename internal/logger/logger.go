package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger provides structured logging with verbose support. Records pass
// through the redacting handler before reaching the terminal renderer.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
	base           *slog.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Format selects how records are encoded
type Format int

const (
	// FormatText is the colored terminal layout
	FormatText Format = iota
	// FormatJSON writes one JSON object per line, for log files
	FormatJSON
)

var (
	outputMu     sync.RWMutex
	output       io.Writer = os.Stderr
	outputFormat           = FormatText
)

// SetOutput redirects loggers created after the call. The TUI points this at a
// file so log lines do not tear the alternate screen. A nil writer restores
// stderr and the text format.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	if w == nil {
		w = os.Stderr
		outputFormat = FormatText
	}
	output = w
}

// SetFormat sets the encoding used by loggers created after the call
func SetFormat(f Format) {
	outputMu.Lock()
	defer outputMu.Unlock()
	outputFormat = f
}

func currentFormat() Format {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return outputFormat
}

// Output returns the writer new loggers attach to.
func Output() io.Writer {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return output
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return NewWithWriter(component, verboseChecker, Output())
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger bound to w
func NewWithWriter(component string, verboseChecker VerboseChecker, w io.Writer) *Logger {
	if component == "" {
		component = "main"
	}
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         w,
		base:           slog.New(newHandler(w, currentFormat())).With("component", component),
	}
}

func newHandler(w io.Writer, f Format) slog.Handler {
	opts := charmlog.Options{
		Level:           charmlog.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	}
	if f == FormatJSON {
		opts.Formatter = charmlog.JSONFormatter
		opts.TimeFormat = time.RFC3339Nano
	}
	return NewSecureHandler(charmlog.NewWithOptions(w, opts))
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return NewWithWriter(component, l.verboseChecker, l.writer)
}

// Slog exposes the underlying structured logger
func (l *Logger) Slog() *slog.Logger {
	return l.base
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.log(slog.LevelDebug, msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.log(slog.LevelInfo, msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.log(slog.LevelDebug, msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.log(slog.LevelInfo, msg, fields, args...)
	}
}

// WarnWithFields logs warning message with structured fields (always shown)
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(slog.LevelWarn, msg, fields, args...)
}

// ErrorWithFields logs error message with structured fields (always shown)
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(slog.LevelError, msg, fields, args...)
}

func (l *Logger) log(level slog.Level, msg string, fields []Field, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	attrs := make([]any, 0, len(fields))
	for _, field := range fields {
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}

	l.base.Log(context.Background(), level, msg, attrs...)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
