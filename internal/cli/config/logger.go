package config

import (
	"context"
	"log/slog"
)

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// LoggerKey returns the context key used for storing the logger. This lets
// the cli package store the logger without an import cycle with commands.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
