//go:build !windows && !darwin && !linux

package notify

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
)

func systemSend(context.Context, string, string) error {
	return errors.Newf("notifications are not implemented on %s", runtime.GOOS)
}
