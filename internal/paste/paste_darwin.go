//go:build darwin

package paste

import (
	"context"

	"github.com/cockroachdb/errors"

	"clipregex/internal/command"
)

const pasteScript = `tell application "System Events" to keystroke "v" using command down`

// appleScriptTrigger needs the Accessibility permission for the calling
// process; without it osascript fails and the paste is reported unsupported.
type appleScriptTrigger struct{}

func newSystem() Trigger {
	return appleScriptTrigger{}
}

func (appleScriptTrigger) Paste(ctx context.Context) error {
	if _, err := command.Run(ctx, "osascript", "-e", pasteScript); err != nil {
		return unsupported(errors.Wrap(err, "sending cmd+v"))
	}

	return nil
}
