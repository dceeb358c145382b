// Package paste injects the platform's paste keystroke.
package paste

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrUnsupported marks a paste that could not be injected: no helper tool,
// no input-injection permission, or an unsupported platform.
var ErrUnsupported = errors.New("synthetic paste unsupported")

type Trigger interface {
	Paste(ctx context.Context) error
}

// New returns the paste trigger for the running platform.
func New() Trigger {
	return newSystem()
}

func unsupported(err error) error {
	return errors.Mark(err, ErrUnsupported)
}
