// Package startup registers the executable to run when the user logs in.
package startup

import (
	"os"

	"github.com/cockroachdb/errors"
)

const appName = "clipregex"

// Path returns the location of the login entry for this platform.
func Path() (string, error) {
	return entryPath()
}

func IsEnabled() bool {
	p, err := entryPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(p)

	return err == nil
}

// Enable points the login entry at the running executable.
func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}

	p, err := entryPath()
	if err != nil {
		return err
	}

	return install(p, exe)
}

// Disable removes the login entry. A missing entry is not an error.
func Disable() error {
	p, err := entryPath()
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", p)
	}

	return nil
}
