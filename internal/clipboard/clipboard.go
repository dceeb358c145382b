// Package clipboard reads and writes the system clipboard as text.
package clipboard

import "github.com/cockroachdb/errors"

// ErrAccess marks every clipboard read or write failure.
var ErrAccess = errors.New("clipboard access failed")

type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// New returns the clipboard implementation for the running platform.
func New() Clipboard {
	return newSystem()
}

func accessError(err error, op string) error {
	return errors.Mark(errors.Wrapf(err, "clipboard %s", op), ErrAccess)
}
