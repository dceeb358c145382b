package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

const defaultSettle = 150 * time.Millisecond

// Watcher reports edits to the settings document. The replacement action
// does not depend on it; triggers always re-read the document.
type Watcher struct {
	loader   *Loader
	logger   *slog.Logger
	settle   time.Duration
	onChange func(*Config)
}

// NewWatcher calls onChange with each successfully parsed revision of the
// document. Revisions that fail to parse are logged and skipped.
func NewWatcher(loader *Loader, logger *slog.Logger, onChange func(*Config)) *Watcher {
	return &Watcher{
		loader:   loader,
		logger:   logger.With("component", "watcher"),
		settle:   defaultSettle,
		onChange: onChange,
	}
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file so that editors which replace the file on save are seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch config file")
	}
	defer func() {
		_ = watcher.Close()
	}()

	target := filepath.Clean(w.loader.Path())
	watchDir := filepath.Dir(target)

	if err := watcher.Add(watchDir); err != nil {
		return errors.Wrapf(err, "watch config directory %s", watchDir)
	}

	w.logger.Info("Watching config", "path", target)

	var (
		pending     bool
		pendingFrom time.Time
	)

	ticker := time.NewTicker(w.settle / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pending && time.Since(pendingFrom) >= w.settle {
				pending = false
				w.process()
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				pending = true
				pendingFrom = time.Now()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("Config watcher error", "error", watchErr.Error())
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) process() {
	cfg, err := w.loader.Read()
	if err != nil {
		w.logger.Warn("Config changed but cannot be loaded; triggers will use defaults until fixed",
			"path", w.loader.Path(),
			"error", err.Error(),
			"trace", fmt.Sprintf("%+v", err),
		)

		return
	}

	w.logger.Info("Config changed", "path", w.loader.Path(), "rules", len(cfg.Replacements))

	if w.onChange != nil {
		w.onChange(cfg)
	}
}
