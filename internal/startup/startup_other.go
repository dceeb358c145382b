//go:build !linux && !darwin && !windows

package startup

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

func entryPath() (string, error) {
	return "", errors.Newf("start on login is not supported on %s", runtime.GOOS)
}

func install(string, string) error {
	return errors.Newf("start on login is not supported on %s", runtime.GOOS)
}
