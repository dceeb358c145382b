// Package action runs the clipboard transformation triggered by the hotkey:
// read, substitute, write back, notify and paste.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"

	"clipregex/internal/clipboard"
	"clipregex/internal/config"
	"clipregex/internal/notify"
	"clipregex/internal/paste"
	"clipregex/internal/replace"
)

const (
	DefaultSettleDelay = 100 * time.Millisecond
	MinSettleDelay     = 100 * time.Millisecond
	MaxSettleDelay     = 500 * time.Millisecond

	notifyTitle = "clipregex"
)

var (
	// ErrBusy is returned by Run when another transformation is still in flight.
	ErrBusy = errors.New("replacement already in progress")

	// ErrStopped is returned by Run once Wait has been called.
	ErrStopped = errors.New("replacer stopped")
)

// ConfigSource yields the configuration for one trigger. Load never fails.
type ConfigSource interface {
	Load() *config.Config
}

// Result describes one completed run.
type Result struct {
	Rules        int
	OriginalSize int
	ModifiedSize int
	Changed      bool
	Pasted       bool
	Duration     time.Duration
}

type Replacer struct {
	clipboard clipboard.Clipboard
	paster    paste.Trigger
	notifier  notify.Notifier
	source    ConfigSource
	logger    *slog.Logger
	settle    time.Duration
	sleep     func(ctx context.Context, d time.Duration)

	busy atomic.Bool

	mu       sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
}

type Option func(*Replacer)

// WithSettleDelay sets the pause between writing the clipboard and pasting,
// clamped to [MinSettleDelay, MaxSettleDelay].
func WithSettleDelay(d time.Duration) Option {
	return func(r *Replacer) {
		r.settle = clampSettle(d)
	}
}

// WithNotifier replaces the default no-op notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Replacer) {
		if n != nil {
			r.notifier = n
		}
	}
}

func New(
	cb clipboard.Clipboard,
	paster paste.Trigger,
	source ConfigSource,
	logger *slog.Logger,
	opts ...Option,
) *Replacer {
	r := &Replacer{
		clipboard: cb,
		paster:    paster,
		notifier:  notify.Nop{},
		source:    source,
		logger:    logger.With("component", "action"),
		settle:    DefaultSettleDelay,
		sleep:     sleepContext,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func clampSettle(d time.Duration) time.Duration {
	return min(max(d, MinSettleDelay), MaxSettleDelay)
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Trigger is the hotkey handler. It never panics and never returns an error;
// every outcome is logged.
func (r *Replacer) Trigger() {
	defer func() {
		if p := recover(); p != nil {
			err := errors.Newf("panic: %v", p)
			r.logger.Error("Recovered from panic in replacement", "error", fmt.Sprintf("%+v", err))
		}
	}()

	res, err := r.Run(context.Background())

	switch {
	case errors.Is(err, ErrBusy):
		r.logger.Info("Replacement already in progress, trigger dropped")
	case errors.Is(err, ErrStopped):
		r.logger.Info("Shutting down, trigger dropped")
	case errors.Is(err, replace.ErrRuleEvaluation):
		r.logger.Error("Failed to apply rules, clipboard left unchanged",
			"error", err.Error(), "trace", fmt.Sprintf("%+v", err))
	case err != nil:
		r.logger.Error("Replacement aborted", "error", err.Error())
	default:
		r.logger.Info("Clipboard transformed",
			"rules", res.Rules,
			"original", humanize.Bytes(uint64(res.OriginalSize)),
			"modified", humanize.Bytes(uint64(res.ModifiedSize)),
			"changed", res.Changed,
			"pasted", res.Pasted,
			"took", res.Duration.Round(time.Millisecond).String(),
		)
	}
}

// Run performs one transformation. It returns ErrBusy without side effects
// when another run is active. A paste failure is reported through logs and
// notifications, not through the returned error.
func (r *Replacer) Run(ctx context.Context) (Result, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()

		return Result{}, ErrStopped
	}

	r.inflight.Add(1)
	r.mu.Unlock()

	defer r.inflight.Done()

	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer r.busy.Store(false)

	start := time.Now()

	text, err := r.clipboard.Read()
	if err != nil {
		return Result{}, errors.Wrap(err, "reading clipboard")
	}

	cfg := r.source.Load()

	out, err := replace.Apply(text, cfg.Replacements)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Rules:        len(cfg.Replacements),
		OriginalSize: len(text),
		ModifiedSize: len(out),
		Changed:      out != text,
	}

	r.logger.Debug("Substitution applied", "original", text, "modified", out)

	if err := r.clipboard.Write(out); err != nil {
		return Result{}, errors.Wrap(err, "writing clipboard")
	}

	if cfg.UseNotifications {
		r.notifier.Notify(notifyTitle, fmt.Sprintf("Clipboard updated (%d rules applied)", res.Rules))
	}

	r.sleep(ctx, r.settle)

	if err := r.paster.Paste(ctx); err != nil {
		r.logger.Warn("Failed to paste, clipboard holds the result",
			"error", err.Error(), "unsupported", errors.Is(err, paste.ErrUnsupported))

		if cfg.UseNotifications {
			r.notifier.Notify(notifyTitle, "Paste manually: the result is on the clipboard")
		}
	} else {
		res.Pasted = true
	}

	res.Duration = time.Since(start)

	return res, nil
}

// Wait stops accepting new runs and blocks until the running one, if any,
// has finished writing and pasting.
func (r *Replacer) Wait() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.inflight.Wait()
}
