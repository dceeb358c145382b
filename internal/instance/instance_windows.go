//go:build windows

package instance

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

const mutexName = `Local\clipregex-single-instance`

type mutexLock struct {
	h windows.Handle
}

func acquire() (Lock, error) {
	name, err := windows.UTF16PtrFromString(mutexName)
	if err != nil {
		return nil, errors.Wrap(err, "encoding mutex name")
	}

	h, err := windows.CreateMutex(nil, false, name)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if h != 0 {
				windows.CloseHandle(h)
			}

			return nil, errors.WithStack(ErrAlreadyRunning)
		}

		return nil, errors.Wrap(err, "creating instance mutex")
	}

	return &mutexLock{h: h}, nil
}

func (l *mutexLock) Release() error {
	if l.h == 0 {
		return nil
	}

	err := windows.CloseHandle(l.h)
	l.h = 0

	return errors.Wrap(err, "closing instance mutex")
}
