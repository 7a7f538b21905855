package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Option configures a logger.
type Option func(*logrus.Logger)

// WithLevel sets the log level from a config string; unknown levels fall
// back to info.
func WithLevel(level string) Option {
	return func(l *logrus.Logger) {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			parsed = logrus.InfoLevel
		}
		l.SetLevel(parsed)
	}
}

// WithOutput sets the logger output.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// New creates a logger that is silent by default. The TUI owns the
// terminal, so callers must route output to a file via WithOutput or
// OpenLogFile.
func New(opts ...Option) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// OpenLogFile opens (creating directories as needed) the log file at path,
// or the default ~/.local/state/tbtop/tbtop.log when path is empty.
func OpenLogFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		path, err = defaultLogPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func defaultLogPath() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "tbtop", "tbtop.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "tbtop", "tbtop.log"), nil
}
