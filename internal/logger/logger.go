// Package logger configures the process-wide zerolog logger. Logs go to
// stderr by default so that stdout carries only the analysis output.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents logger configuration
type Config struct {
	// Level is one of debug, info, warn, error
	Level string
	// Pretty enables human-readable console output
	Pretty bool
	// Output defaults to os.Stderr
	Output io.Writer
}

var defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Configure replaces the default logger.
func Configure(cfg Config) error {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var writer io.Writer = cfg.Output
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	log.Logger = defaultLogger
	return nil
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info logs an informational message
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// With returns a child logger carrying key=value.
func With(key string, value any) zerolog.Logger {
	return defaultLogger.With().Interface(key, value).Logger()
}
