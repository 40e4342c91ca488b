// Package logger implements the domain.Logger interface over zerolog.
package logger

import (
	"os"
	"strings"

	"instruction-viewer/internal/domain"

	"github.com/rs/zerolog"
)

// AppLogger implements the domain.Logger interface
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance at the given level. Unknown levels
// default to info.
func NewLogger(levelStr string) domain.Logger {
	logger := zerolog.New(os.Stdout).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()
	return &AppLogger{logger: logger}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	l.withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields attaches alternating key/value pairs to the event. A trailing
// key without a value is dropped.
func (l *AppLogger) withFields(event *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	return event
}

// parseLogLevel converts a string log level to a zerolog level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
