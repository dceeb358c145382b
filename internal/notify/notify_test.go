package notify

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/logging"
)

type recorder struct {
	mu    sync.Mutex
	calls [][2]string
	err   error
}

func (r *recorder) send(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, [2]string{title, message})

	return r.err
}

func TestDesktopDelivers(t *testing.T) {
	rec := &recorder{}
	d := newDesktop(logging.Discard(), rec.send)

	d.Notify("Clipboard updated", "3 rules applied")
	d.Wait()

	require.Len(t, rec.calls, 1)
	assert.Equal(t, [2]string{"Clipboard updated", "3 rules applied"}, rec.calls[0])
}

func TestDesktopLogsFailure(t *testing.T) {
	var buf bytes.Buffer

	rec := &recorder{err: errors.New("no notification daemon")}
	d := newDesktop(logging.NewWriter(&buf, slog.LevelDebug), rec.send)

	d.Notify("title", "message")
	d.Wait()

	assert.Contains(t, buf.String(), "Failed to show notification")
	assert.Contains(t, buf.String(), "no notification daemon")
}

func TestDesktopRecoversPanic(t *testing.T) {
	var buf bytes.Buffer

	d := newDesktop(logging.NewWriter(&buf, slog.LevelDebug), func(context.Context, string, string) error {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		d.Notify("title", "message")
		d.Wait()
	})
	assert.Contains(t, buf.String(), "Recovered from panic")
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}

	assert.NotPanics(t, func() { n.Notify("a", "b") })
}
