package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/config"
	"clipregex/internal/report"
)

func TestRenderRules(t *testing.T) {
	var buf bytes.Buffer

	failed, err := report.RenderRules(&buf, []config.Rule{
		{Regex: "foo", ReplaceWith: "bar"},
		{Regex: "(", ReplaceWith: "x"},
		{Regex: `(a)`, ReplaceWith: `\2`},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "regex")
	assert.Contains(t, out, "foo")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "invalid pattern")
	assert.Contains(t, out, "invalid replacement template")
	assert.NotContains(t, out, "rule 1")
}

func TestRenderRulesEmpty(t *testing.T) {
	var buf bytes.Buffer

	failed, err := report.RenderRules(&buf, nil)
	require.NoError(t, err)
	assert.Zero(t, failed)
}
