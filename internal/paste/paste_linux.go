//go:build linux

package paste

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"clipregex/internal/command"
)

// toolTrigger uses wtype on Wayland sessions and xdotool elsewhere.
type toolTrigger struct {
	lookup func(string) bool
	getenv func(string) string
	run    func(ctx context.Context, name string, args ...string) (string, error)
}

func newSystem() Trigger {
	return toolTrigger{
		lookup: command.Available,
		getenv: os.Getenv,
		run:    command.Run,
	}
}

func (t toolTrigger) Paste(ctx context.Context) error {
	name, args, err := t.tool()
	if err != nil {
		return unsupported(err)
	}

	if _, err := t.run(ctx, name, args...); err != nil {
		return unsupported(errors.Wrapf(err, "sending ctrl+v with %s", name))
	}

	return nil
}

func (t toolTrigger) tool() (string, []string, error) {
	xdotool := []string{"key", "--clearmodifiers", "ctrl+v"}
	wtype := []string{"-M", "ctrl", "v", "-m", "ctrl"}

	if t.getenv("WAYLAND_DISPLAY") != "" && t.lookup("wtype") {
		return "wtype", wtype, nil
	}

	if t.lookup("xdotool") {
		return "xdotool", xdotool, nil
	}

	if t.lookup("wtype") {
		return "wtype", wtype, nil
	}

	return "", nil, errors.New("neither xdotool nor wtype is installed")
}
