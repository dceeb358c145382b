package config_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/config"
	"clipregex/internal/logging"
)

func TestWatcherReportsValidRevisions(t *testing.T) {
	path := writeConfig(t, "config.json", `{"hotkey": "ctrl+alt+v"}`)
	loader, _ := newLoader(t, path)

	var (
		mu      sync.Mutex
		hotkeys []string
	)

	w := config.NewWatcher(loader, logging.Discard(), func(cfg *config.Config) {
		mu.Lock()
		defer mu.Unlock()

		hotkeys = append(hotkeys, cfg.Hotkey)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watcher time to register before editing.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"hotkey": "ctrl+shift+x"}`), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(hotkeys) > 0 && hotkeys[len(hotkeys)-1] == "ctrl+shift+x"
	}, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"hotkey": `), 0o644))
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	last := hotkeys[len(hotkeys)-1]
	mu.Unlock()
	assert.Equal(t, "ctrl+shift+x", last)

	cancel()
	require.NoError(t, <-done)
}
