// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	bdlog "github.com/msto63/boundary/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json" or "text" (default: json)
	Format string

	// Primary output. Defaults to stderr.
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *bdlog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format := bdlog.FormatJSON
	if cfg.Format == "text" {
		format = bdlog.FormatText
	}

	return bdlog.NewWithConfig(bdlog.Config{
		Level:        parseLevel(cfg.Level),
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: true,
	})
}

// NewSimpleLogger creates a logger with default configuration
func NewSimpleLogger(serviceName string) *bdlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// OpenLogFile opens (and creates) a log file for appending. The TUI logs
// here so log lines do not tear the alternate screen.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// parseLevel converts a string level to bdlog.Level
func parseLevel(level string) bdlog.Level {
	parsed, err := bdlog.ParseLevel(level)
	if err != nil {
		return bdlog.LevelInfo
	}
	return parsed
}

// Compatibility layer for code using key-value logging

// Logger wraps the Foundation logger with key-value methods
type Logger struct {
	*bdlog.Logger
	name string
}

// New creates a key-value logger with default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger
func Wrap(l *bdlog.Logger) *Logger {
	return &Logger{Logger: l, name: l.Name()}
}

// Discard returns a key-value logger that drops everything
func Discard() *Logger {
	return Wrap(bdlog.Discard())
}

// Named returns a child logger with a different name
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.WithName(name), name: name}
}

// With returns a child logger that adds the key-value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...)), name: l.name}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	mdwLevel := bdlog.LevelInfo
	switch level {
	case LevelDebug:
		mdwLevel = bdlog.LevelDebug
	case LevelInfo:
		mdwLevel = bdlog.LevelInfo
	case LevelWarn:
		mdwLevel = bdlog.LevelWarn
	case LevelError:
		mdwLevel = bdlog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(mdwLevel),
		name:   l.name,
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to bdlog.Fields
func toFields(keysAndValues ...interface{}) bdlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(bdlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		value := keysAndValues[i+1]
		if err, ok := value.(error); ok && err != nil {
			value = err.Error()
		}
		fields[key] = value
	}
	return fields
}
