package replace

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/config"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		groups int
		names  map[string]int
	}{
		{in: `abc`, want: `abc`},
		{in: `(?P<user>\w+)@(?P<host>\w+)`, want: `(\w+)@(\w+)`, groups: 2, names: map[string]int{"user": 1, "host": 2}},
		{in: `(a)(?P<b>x)(c)`, want: `(a)(x)(c)`, groups: 3, names: map[string]int{"b": 2}},
		{in: `(?P<q>['"])\w+(?P=q)`, want: `(['"])\w+(?:\1)`, groups: 1, names: map[string]int{"q": 1}},
		{in: `(?<n>x)\k<n>1`, want: `(x)(?:\1)1`, groups: 1, names: map[string]int{"n": 1}},
		{in: `(?'n'x)`, want: `(x)`, groups: 1, names: map[string]int{"n": 1}},
		{in: `(?<=\$)(\d+)(?<!0)`, want: `(?<=\$)(\d+)(?<!0)`, groups: 1},
		{in: `(?:a)(?i)(b)`, want: `(?:a)(?i)(b)`, groups: 1},
		{in: `[(]\(x\)[^](]`, want: `[(]\(x\)[^](]`},
		{in: `[\](]`, want: `[\](]`},
		{in: `end\Z`, want: `end\z`},
		{in: `\\Z`, want: `\\Z`},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			p, err := translate(tc.in)
			require.NoError(t, err)

			assert.Equal(t, tc.want, p.expr)
			assert.Equal(t, tc.groups, p.groups)

			if tc.names == nil {
				assert.Empty(t, p.names)
			} else {
				assert.Equal(t, tc.names, p.names)
			}

			re, err := regexp2.Compile(p.expr, regexp2.None)
			require.NoError(t, err)
			assert.Len(t, re.GetGroupNumbers(), tc.groups+1)
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: `(?P<1a>x)`, want: "bad character in group name"},
		{in: `(?P<>x)`, want: "bad character in group name"},
		{in: `(?P<a>x)(?P<a>y)`, want: "redefinition of group name"},
		{in: `(?P=b)`, want: "unknown group name"},
		{in: `(?P<a>x)\k<b>`, want: "unknown group name"},
		{in: `(?P<a`, want: "unterminated group name"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := translate(tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestApplyTimesOut(t *testing.T) {
	prev := MatchTimeout
	MatchTimeout = 50 * time.Millisecond

	t.Cleanup(func() { MatchTimeout = prev })

	p, err := Compile([]config.Rule{{Regex: `ok`, ReplaceWith: `fine`}, {Regex: `(a+)+$`, ReplaceWith: `x`}})
	require.NoError(t, err)

	got, err := p.Apply(strings.Repeat("a", 40) + "!")
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrRuleEvaluation))

	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, 1, ruleErr.Index)
}
