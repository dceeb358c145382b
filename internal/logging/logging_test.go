package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/logging"
)

func TestHandlerLineFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelDebug)

	log.Info("Config loaded", "path", "/tmp/config.json", "rules", 3)

	line := buf.String()
	assert.Regexp(t,
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2} INFO Config loaded path=/tmp/config.json rules=3\n$`),
		line)
}

func TestHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelDebug)

	log.Debug("Original text", "text", "hello \"world\"\tx", "empty", "")

	assert.Contains(t, buf.String(), `text="hello \"world\"\tx"`)
	assert.Contains(t, buf.String(), `empty=""`)
}

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown")
	log.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN shown")
	assert.Contains(t, out, "ERROR also shown")
}

func TestHandlerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelInfo).
		With("component", "action").
		WithGroup("rule")

	log.Info("Rule applied", "index", 2)

	assert.Contains(t, buf.String(), "INFO Rule applied component=action rule.index=2")
}

func TestHandlerMultilineTrailer(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, slog.LevelInfo)

	err := errors.New("boom")
	log.Error("Replacement failed", "error", errors.Wrap(err, "rule 0").Error(), "trace", "line one\nline two\n")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `ERROR Replacement failed error="rule 0: boom"`)
	assert.Equal(t, "trace:", lines[1])
	assert.Equal(t, "\tline one", lines[2])
	assert.Equal(t, "\tline two", lines[3])
}

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clipregex.log")

	log, closeFn, err := logging.New(logging.Options{Path: path, Level: slog.LevelInfo})
	require.NoError(t, err)

	log.Info("Started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO Started")

	info, err := os.Stat(path)
	require.NoError(t, err)

	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(logging.FilePermissions), info.Mode().Perm())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tc.in)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
