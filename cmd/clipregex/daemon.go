package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getlantern/systray"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"clipregex/internal/action"
	"clipregex/internal/assets"
	"clipregex/internal/clipboard"
	"clipregex/internal/config"
	"clipregex/internal/hotkey"
	"clipregex/internal/instance"
	"clipregex/internal/logging"
	"clipregex/internal/notify"
	"clipregex/internal/paste"
	"clipregex/internal/replace"
)

var settleDelay time.Duration

// The tray event loop must own the main OS thread on macOS.
func init() {
	runtime.LockOSThread()

	rootCmd.Flags().DurationVar(
		&settleDelay,
		"settle",
		action.DefaultSettleDelay,
		fmt.Sprintf("Pause between writing the clipboard and pasting (%s to %s)",
			action.MinSettleDelay, action.MaxSettleDelay),
	)
}

type daemon struct {
	logger   *slog.Logger
	loader   *config.Loader
	listener *hotkey.Listener
	replacer *action.Replacer
	notifier *notify.Desktop
	started  time.Time

	mu         sync.Mutex
	hotkeyItem *systray.MenuItem
	cancel     context.CancelFunc
	watchDone  chan struct{}
}

func runDaemon(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(logging.DefaultPath())
	if err != nil {
		return err
	}
	defer closeLog()

	lock, err := instance.Acquire()
	if err != nil {
		if errors.Is(err, instance.ErrAlreadyRunning) {
			logger.Info("Another instance of clipregex is already running, exiting")
		}

		return err
	}
	defer lock.Release()

	d := newDaemon(logger, resolvedConfigPath())

	logger.Info("Starting clipregex", "config", d.loader.Path(), "pid", os.Getpid())

	systray.Run(d.onReady, d.onExit)

	return nil
}

func newDaemon(logger *slog.Logger, cfgPath string) *daemon {
	loader := config.NewLoader(cfgPath, logger)
	notifier := notify.New(logger)

	return &daemon{
		logger:   logger,
		loader:   loader,
		listener: hotkey.New(logger),
		notifier: notifier,
		replacer: action.New(
			clipboard.New(),
			paste.New(),
			loader,
			logger,
			action.WithSettleDelay(settleDelay),
			action.WithNotifier(notifier),
		),
		started: time.Now(),
	}
}

func (d *daemon) onReady() {
	cfg := d.loader.Load()

	systray.SetIcon(assets.ForTray(cfg.IconPath, d.logger))
	systray.SetTitle("clipregex")
	systray.SetTooltip("clipregex - press " + cfg.Hotkey + " to rewrite the clipboard")

	d.mu.Lock()
	d.hotkeyItem = systray.AddMenuItem("Hotkey: "+cfg.Hotkey, "Key combination that rewrites the clipboard")
	d.hotkeyItem.Disable()
	d.mu.Unlock()

	systray.AddSeparator()

	mExit := systray.AddMenuItem("Exit", "Quit clipregex")

	if err := d.listener.Register(cfg.Hotkey, d.replacer.Trigger); err != nil {
		d.logger.Warn("Running without a hotkey; fix the hotkey in the config file to enable it",
			"config", d.loader.Path())
	} else {
		d.setHotkeyLabel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.watchDone = make(chan struct{})

	watcher := config.NewWatcher(d.loader, d.logger, d.configChanged)

	go func() {
		defer close(d.watchDone)

		if err := watcher.Run(ctx); err != nil {
			d.logger.Warn("Config watcher stopped", "error", err.Error())
		}
	}()

	go func() {
		<-mExit.ClickedCh
		d.logger.Info("Exit requested from tray")
		systray.Quit()
	}()
}

func (d *daemon) onExit() {
	if d.cancel != nil {
		d.cancel()
		<-d.watchDone
	}

	d.listener.Unregister()
	d.replacer.Wait()
	d.notifier.Wait()

	d.logger.Info("clipregex stopped", "uptime", durafmt.Parse(time.Since(d.started)).LimitFirstN(2).String())
}

// configChanged runs for every parsable revision of the config file. Rules
// are only checked here; each trigger reloads them.
func (d *daemon) configChanged(cfg *config.Config) {
	for _, err := range replace.Validate(cfg.Replacements) {
		if err != nil {
			d.logger.Warn("Invalid rule, triggers will fail until it is fixed", "error", err.Error())
		}
	}

	if err := d.listener.Change(cfg.Hotkey, d.replacer.Trigger); err != nil {
		return
	}

	d.setHotkeyLabel()
}

func (d *daemon) setHotkeyLabel() {
	combo, ok := d.listener.Combo()
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.hotkeyItem != nil {
		d.hotkeyItem.SetTitle("Hotkey: " + combo.String())
	}

	systray.SetTooltip("clipregex - press " + combo.String() + " to rewrite the clipboard")
}
