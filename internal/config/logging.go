package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger from a LoggingConfig. Console
// output is always on; file output is appended when cfg.ToFile is set.
// An unparseable level falls back to info.
func NewLogger(cfg LoggingConfig) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})

	if cfg.ToFile {
		logPath := cfg.File
		if logPath == "" {
			logPath = filepath.Join(os.TempDir(), "rwadealtracker.log")
		}
		if mkErr := os.MkdirAll(filepath.Dir(logPath), 0750); mkErr != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory: %w", mkErr)
		}
		logFile, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", openErr)
		}
		writers = append(writers, logFile)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return logger, nil
}
