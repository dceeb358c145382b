//go:build linux

package paste

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTrigger(installed map[string]bool, env map[string]string, runErr error) (toolTrigger, *[]string) {
	var calls []string

	return toolTrigger{
		lookup: func(name string) bool { return installed[name] },
		getenv: func(key string) string { return env[key] },
		run: func(_ context.Context, name string, args ...string) (string, error) {
			calls = append(calls, name)

			return "", runErr
		},
	}, &calls
}

func TestToolTriggerSelection(t *testing.T) {
	cases := []struct {
		name      string
		installed map[string]bool
		env       map[string]string
		want      string
	}{
		{name: "x11 with xdotool", installed: map[string]bool{"xdotool": true, "wtype": true}, want: "xdotool"},
		{name: "wayland prefers wtype", installed: map[string]bool{"xdotool": true, "wtype": true}, env: map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, want: "wtype"},
		{name: "wayland without wtype", installed: map[string]bool{"xdotool": true}, env: map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, want: "xdotool"},
		{name: "only wtype", installed: map[string]bool{"wtype": true}, want: "wtype"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trigger, calls := fakeTrigger(tc.installed, tc.env, nil)

			require.NoError(t, trigger.Paste(context.Background()))
			assert.Equal(t, []string{tc.want}, *calls)
		})
	}
}

func TestToolTriggerUnsupported(t *testing.T) {
	trigger, calls := fakeTrigger(nil, nil, nil)

	err := trigger.Paste(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Empty(t, *calls)
}

func TestToolTriggerCommandFailure(t *testing.T) {
	trigger, _ := fakeTrigger(map[string]bool{"xdotool": true}, nil, errors.New("exit status 1"))

	err := trigger.Paste(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), "xdotool")
}
