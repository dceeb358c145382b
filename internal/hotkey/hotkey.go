// Package hotkey registers a single system-wide key combination and calls a
// handler each time it is pressed.
package hotkey

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"clipregex/internal/keycombo"
)

// ErrRegister marks a combination that could not be parsed or claimed.
var ErrRegister = errors.New("hotkey registration failed")

// Handler is run on its own goroutine for every key press.
type Handler func()

// binding is one live registration with the window system.
type binding interface {
	stop()
}

// Listener owns at most one registered combination at a time.
type Listener struct {
	logger *slog.Logger

	mu      sync.Mutex
	combo   keycombo.Combo
	active  binding
	handler Handler

	hmu sync.RWMutex
}

func New(logger *slog.Logger) *Listener {
	return &Listener{logger: logger.With("component", "hotkey")}
}

// Register parses descriptor, replaces any previous registration and routes key
// presses to handler.
func (l *Listener) Register(descriptor string, handler Handler) error {
	combo, err := keycombo.Parse(descriptor)
	if err != nil {
		return errors.Mark(err, ErrRegister)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
	l.setHandler(handler)

	if err := l.bindLocked(combo); err != nil {
		l.logger.Error("Failed to register hotkey", "hotkey", combo.String(), "error", err.Error())

		return err
	}

	return nil
}

// Change swaps to a new combination. When the new one cannot be claimed the
// previous registration is restored and the error is returned.
func (l *Listener) Change(descriptor string, handler Handler) error {
	combo, err := keycombo.Parse(descriptor)
	if err != nil {
		return errors.Mark(err, ErrRegister)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.setHandler(handler)

	if l.active != nil && l.combo == combo {
		return nil
	}

	previous, hadPrevious := l.combo, l.active != nil

	l.stopLocked()

	err = l.bindLocked(combo)
	if err == nil {
		return nil
	}

	l.logger.Error("Failed to change hotkey", "hotkey", combo.String(), "error", err.Error())

	if hadPrevious {
		if restoreErr := l.bindLocked(previous); restoreErr != nil {
			l.logger.Error("Failed to restore previous hotkey",
				"hotkey", previous.String(), "error", restoreErr.Error())
		}
	}

	return err
}

// Unregister releases the combination. It is safe to call more than once.
func (l *Listener) Unregister() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
}

// Combo returns the registered combination, if any.
func (l *Listener) Combo() (keycombo.Combo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.combo, l.active != nil
}

func (l *Listener) bindLocked(combo keycombo.Combo) error {
	b, err := register(combo, l.dispatch)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "hotkey %s", combo), ErrRegister)
	}

	l.combo = combo
	l.active = b

	l.logger.Info("Hotkey registered", "hotkey", combo.String())

	return nil
}

func (l *Listener) stopLocked() {
	if l.active == nil {
		return
	}

	l.active.stop()
	l.active = nil

	l.logger.Info("Hotkey unregistered", "hotkey", l.combo.String())
}

func (l *Listener) setHandler(h Handler) {
	l.hmu.Lock()
	l.handler = h
	l.hmu.Unlock()
}

// dispatch is called from the platform event loop and must not block it.
func (l *Listener) dispatch() {
	l.hmu.RLock()
	h := l.handler
	l.hmu.RUnlock()

	if h == nil {
		l.logger.Warn("Hotkey pressed with no handler set")

		return
	}

	l.logger.Debug("Hotkey pressed")

	go h()
}
