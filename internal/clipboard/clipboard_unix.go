//go:build !windows

package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
)

// commandClipboard shells out to pbcopy/pbpaste on macOS and to xclip, xsel
// or wl-clipboard elsewhere.
type commandClipboard struct{}

func newSystem() Clipboard {
	return commandClipboard{}
}

var errNoUtility = errors.New("no clipboard utility found; install xclip, xsel or wl-clipboard")

func (commandClipboard) Read() (string, error) {
	if clipboard.Unsupported {
		return "", accessError(errNoUtility, "read")
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return "", accessError(err, "read")
	}

	return text, nil
}

func (commandClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return accessError(errNoUtility, "write")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return accessError(err, "write")
	}

	return nil
}
