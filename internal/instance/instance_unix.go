//go:build !windows

package instance

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

type fileLock struct {
	f *os.File
}

func acquire() (Lock, error) {
	return AcquireAt(DefaultLockPath())
}

// DefaultLockPath is <user cache dir>/clipregex/clipregex.lock.
func DefaultLockPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "clipregex", "clipregex.lock")
}

// AcquireAt takes an exclusive advisory lock on path. The lock is dropped by
// the kernel if the process dies.
func AcquireAt(path string) (Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating lock directory")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, errors.WithStack(ErrAlreadyRunning)
		}

		return nil, errors.Wrapf(err, "locking %s", path)
	}

	return &fileLock{f: f}, nil
}

func (l *fileLock) Release() error {
	if l.f == nil {
		return nil
	}

	defer func() { l.f = nil }()

	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		l.f.Close()

		return errors.Wrap(err, "unlocking")
	}

	return errors.Wrap(l.f.Close(), "closing lock file")
}
