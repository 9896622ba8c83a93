package config

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log section to the standard logrus logger.
func ConfigureLogging(cfg LogConfig, out io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
