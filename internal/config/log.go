package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var errLoggerInit = errors.New("failed to initialise logger")

// ParseLevel maps a settings log level to slog. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerInit points the default slog logger at a file. The terminal belongs
// to the UI, so nothing is logged to stdout/stderr while it runs.
func LoggerInit(path string, level slog.Level) (io.Closer, error) {
	if err := EnsureDir(); err != nil {
		return nil, errors.Join(err, errLoggerInit)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open %s: %w", path, err), errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))
	slog.SetDefault(logger)

	return logFile, nil
}
