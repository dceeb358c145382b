//go:build linux

package notify

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"

	"clipregex/internal/command"
)

const (
	dbusDest   = "org.freedesktop.Notifications"
	dbusPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	dbusNotify = "org.freedesktop.Notifications.Notify"
)

// systemSend calls the freedesktop notification service over the session
// bus and falls back to notify-send when the bus call fails.
func systemSend(ctx context.Context, title, message string) error {
	dbusErr := sendDBus(ctx, title, message)
	if dbusErr == nil {
		return nil
	}

	if !command.Available("notify-send") {
		return dbusErr
	}

	if _, err := command.Run(ctx, "notify-send", "--app-name", AppName, title, message); err != nil {
		return errors.CombineErrors(dbusErr, err)
	}

	return nil
}

func sendDBus(ctx context.Context, title, message string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return errors.Wrap(err, "connecting to session bus")
	}

	obj := conn.Object(dbusDest, dbusPath)
	call := obj.CallWithContext(ctx, dbusNotify, 0,
		AppName,
		uint32(0),
		"",
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		int32(expireMillis),
	)

	if call.Err != nil {
		return errors.Wrap(call.Err, "calling "+dbusNotify)
	}

	return nil
}
