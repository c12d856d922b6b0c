// Package logging provides context-carried zerolog loggers so that request
// scoped fields (run IDs, component names) follow work across goroutines.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// fallback is returned by FromContext when no logger has been attached.
// It writes human-readable output to stderr at the info level.
var fallback = zerolog.New(zerolog.ConsoleWriter{ //nolint:gochecknoglobals // package default logger
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).Level(zerolog.InfoLevel).With().Timestamp().Logger()

// WithContext returns a child context carrying the given logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or the package fallback
// when none is present. The returned logger is always usable.
func FromContext(ctx context.Context) zerolog.Logger {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		return fallback
	}
	return *logger
}
