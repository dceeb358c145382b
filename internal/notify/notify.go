// Package notify shows best-effort desktop notifications.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// AppName is the sender name shown by notification daemons.
const AppName = "clipregex"

const (
	sendTimeout  = 10 * time.Second
	expireMillis = 5000
)

// ErrNotification marks a notification that could not be shown.
var ErrNotification = errors.New("notification failed")

// Notifier never reports failure to the caller and never blocks on delivery.
type Notifier interface {
	Notify(title, message string)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(string, string) {}

type sendFunc func(ctx context.Context, title, message string) error

// Desktop delivers notifications through the platform's notification
// service on a background goroutine and logs failures.
type Desktop struct {
	logger *slog.Logger
	send   sendFunc
	wg     sync.WaitGroup
}

func New(logger *slog.Logger) *Desktop {
	return newDesktop(logger, systemSend)
}

func newDesktop(logger *slog.Logger, send sendFunc) *Desktop {
	return &Desktop{
		logger: logger.With("component", "notify"),
		send:   send,
	}
}

func (d *Desktop) Notify(title, message string) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()
		d.deliver(title, message)
	}()
}

// Wait blocks until notifications already requested have been handed to the
// platform or have failed.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

func (d *Desktop) deliver(title, message string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Recovered from panic while notifying", "panic", fmt.Sprint(r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.send(ctx, title, message); err != nil {
		err = errors.Mark(err, ErrNotification)
		d.logger.Warn("Failed to show notification", "title", title, "error", err.Error())

		return
	}

	d.logger.Debug("Notification shown", "title", title)
}
