package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to out with the configured level and format.
func New(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// OpenFile opens the log file for appending, creating its directory first.
// The interactive terminal owns stdout, so the TUI logs here instead.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
