// Package logging builds the process-wide slog logger that every component
// receives at construction.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// FilePermissions restricts the log file to its owner.
	FilePermissions = 0o600

	// Stderr selects standard error instead of a log file.
	Stderr = "-"

	fileName = "clipregex.log"
	appDir   = "clipregex"
)

// Options configures New.
type Options struct {
	// Path of the log file, Stderr for standard error, or "" for DefaultPath.
	Path  string
	Level slog.Level
}

// New returns a logger and a function that closes the underlying file.
func New(opts Options) (*slog.Logger, func() error, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}

	if path == Stderr {
		return slog.New(NewHandler(os.Stderr, opts.Level)), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "creating log directory for %s", path)
	}

	//nolint:gosec // path comes from the user's own flags or config dir
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FilePermissions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}

	return slog.New(NewHandler(file, opts.Level)), file.Close, nil
}

// NewWriter returns a logger writing to w. Used by tests and short-lived commands.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, slog.LevelError+1))
}

// DefaultPath is <user config dir>/clipregex/clipregex.log.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(dir, appDir, fileName)
}

// ParseLevel maps debug, info, warn/warning and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Newf("unknown log level %q", s)
	}
}
