//go:build unix

package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/command"
)

func TestRun(t *testing.T) {
	out, err := command.Run(context.Background(), "sh", "-c", "echo '  hello  '")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunFailureIncludesOutput(t *testing.T) {
	_, err := command.Run(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command sh failed: nope")
}

func TestAvailable(t *testing.T) {
	assert.True(t, command.Available("sh"))
	assert.False(t, command.Available("clipregex-definitely-missing-binary"))
}
