package clipboard

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestAccessErrorIsMarked(t *testing.T) {
	cause := errors.New("xclip: exit status 1")

	err := accessError(cause, "read")

	assert.True(t, errors.Is(err, ErrAccess))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "clipboard read: xclip: exit status 1", err.Error())
}

func TestNewReturnsImplementation(t *testing.T) {
	assert.NotNil(t, New())
}
