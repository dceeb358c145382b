// Package command runs short-lived helper programs (osascript, xdotool,
// notify-send, powershell) with a timeout.
package command

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const DefaultTimeout = 10 * time.Second

// Run executes name with args and returns its trimmed combined output.
func Run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, errors.Newf("command timed out after %s: %s", DefaultTimeout, name)
	}

	if err != nil {
		if output == "" {
			return output, errors.Wrapf(err, "command %s failed", name)
		}

		return output, errors.Wrapf(err, "command %s failed: %s", name, output)
	}

	return output, nil
}

// Available reports whether name is on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
