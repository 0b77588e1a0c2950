// Package logger builds the zerolog logger shared by the server, the
// middleware and the repositories.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// New returns a logger writing to output (stdout when nil). In the dev
// environment the output is human readable, otherwise it is JSON.
func New(level, env string, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	w := output
	if isDev(env) {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", "profhub").
		Logger()
}

// Nop is used by tests and by callers that do not care about logs.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case "disabled", "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// GormLevel maps the application log level onto gorm's SQL logger level.
// SQL statements are only traced at debug.
func GormLevel(level string) gormlogger.LogLevel {
	switch ParseLevel(level) {
	case zerolog.DebugLevel:
		return gormlogger.Info
	case zerolog.InfoLevel, zerolog.WarnLevel:
		return gormlogger.Warn
	case zerolog.ErrorLevel:
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

func isDev(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local":
		return true
	}
	return false
}
