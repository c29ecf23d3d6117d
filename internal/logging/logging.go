// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Setup installs a text or JSON handler at level as the default logger and
// returns it. An invalid level falls back to info and is reported.
func Setup(level, format string, w io.Writer) (*slog.Logger, error) {
	var logLevel slog.Level
	levelErr := logLevel.UnmarshalText([]byte(level))
	if levelErr != nil {
		logLevel = slog.LevelInfo
		levelErr = fmt.Errorf("invalid log level %q: %w", level, levelErr)
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q (expected text or json)", format)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, levelErr
}
