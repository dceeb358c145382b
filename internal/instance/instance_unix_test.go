//go:build !windows

package instance

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAtIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clipregex.lock")

	first, err := AcquireAt(path)
	require.NoError(t, err)

	_, err = AcquireAt(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := AcquireAt(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}
