package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs a zerolog.Logger writing to w. Development builds
// get a human-friendly console writer; debug lowers the level.
func NewLogger(appEnv string, debug bool, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger
}

// NewStdoutLogger is NewLogger on stdout.
func NewStdoutLogger(appEnv string, debug bool) zerolog.Logger {
	return NewLogger(appEnv, debug, os.Stdout)
}

// NewFileLogger writes JSON logs to dir/datathieves.log so a full-screen
// terminal UI keeps stdout to itself. The returned func closes the file.
func NewFileLogger(dir string, debug bool) (zerolog.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, "datathieves.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	logger.Info().Str("path", path).Bool("debug", debug).Msg("logger.initialized")

	return logger, f.Close, nil
}
