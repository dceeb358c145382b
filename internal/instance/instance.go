// Package instance keeps a second copy of the daemon from starting.
package instance

import "github.com/cockroachdb/errors"

// ErrAlreadyRunning is returned by Acquire when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held for the lifetime of the process.
type Lock interface {
	Release() error
}

// Acquire takes the per-user single-instance lock.
func Acquire() (Lock, error) {
	return acquire()
}
