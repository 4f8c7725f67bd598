// Package logger configures the global zerolog logger and per-concern
// sub-loggers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	rotationSizeMB = 50
	retentionDays  = 30
	maxBackups     = 10
)

// Init initializes the global logger. A non-empty file path adds a rotating
// file writer; console selects the pretty terminal writer over raw JSON.
func Init(level, file string, console bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	} else {
		writers = append(writers, os.Stderr)
	}

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    rotationSizeMB,
			MaxAge:     retentionDays,
			MaxBackups: maxBackups,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", "dashboard").
		Logger()
	return nil
}

// NewAccessLogger creates the HTTP access logger, rotating in its own file
// when one is configured.
func NewAccessLogger(file string) zerolog.Logger {
	if file == "" {
		return log.Logger.With().Str("type", "access").Logger()
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		log.Warn().Err(err).Msg("access log directory not created, using default logger")
		return log.Logger
	}
	return zerolog.New(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    rotationSizeMB,
		MaxAge:     retentionDays,
		MaxBackups: maxBackups,
		Compress:   true,
	}).With().
		Timestamp().
		Str("type", "access").
		Logger()
}
