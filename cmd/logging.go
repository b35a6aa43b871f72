package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ned-tools/fai-report/internal/config"
)

func setupLogging(c config.LoggingConfig) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch c.Format {
	case "console", "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", c.Format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
