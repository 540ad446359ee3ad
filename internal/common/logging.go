package common

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel = zerolog.Level

const (
	LogLevelDebug = zerolog.DebugLevel
	LogLevelInfo  = zerolog.InfoLevel
	LogLevelWarn  = zerolog.WarnLevel
	LogLevelError = zerolog.ErrorLevel
)

// ParseLogLevel falls back to info for unknown or empty names.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

type LogFormat int

const (
	LogFormatJSON LogFormat = iota
	LogFormatText
)

func ParseLogFormat(s string) LogFormat {
	if s == "text" {
		return LogFormatText
	}
	return LogFormatJSON
}

// Logger is a leveled, field-carrying logger. Stdout belongs to the protocol,
// so the default output is stderr.
type Logger struct {
	zl zerolog.Logger
}

func NewLogger(level LogLevel, format LogFormat, output io.Writer, serverID string) *Logger {
	if output == nil {
		output = os.Stderr
	}
	if format == LogFormatText {
		output = zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("server", serverID).
		Logger()

	return &Logger{zl: zl}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}
