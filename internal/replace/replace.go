// Package replace applies ordered regular-expression substitution rules to
// text. It has no side effects.
//
// Patterns use backtracking, Unicode-aware matching: \w \d \s and \b follow
// Unicode categories, $ also matches before a final newline, and lookaround
// is available. Every match is bounded by MatchTimeout.
package replace

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"

	"clipregex/internal/config"
)

// MatchTimeout bounds the time one rule may spend matching a text.
var MatchTimeout = 2 * time.Second

type compiledRule struct {
	source string
	re     *regexp2.Regexp
	tmpl   *template
}

// Program is a compiled, ordered rule list. It is safe for concurrent use.
type Program struct {
	rules []compiledRule
}

// Compile prepares rules in order. The first rule with an invalid pattern
// or template fails the whole list with an error marked ErrRuleEvaluation.
func Compile(rules []config.Rule) (*Program, error) {
	p := &Program{rules: make([]compiledRule, 0, len(rules))}

	for i, rule := range rules {
		cr, err := compileRule(rule)
		if err != nil {
			return nil, ruleError(i, rule.Regex, err)
		}

		p.rules = append(p.rules, cr)
	}

	return p, nil
}

// Validate compiles each rule independently. The result has one entry per
// rule, nil for rules that compile.
func Validate(rules []config.Rule) []error {
	errs := make([]error, len(rules))

	for i, rule := range rules {
		if _, err := compileRule(rule); err != nil {
			errs[i] = ruleError(i, rule.Regex, err)
		}
	}

	return errs
}

func compileRule(rule config.Rule) (compiledRule, error) {
	pat, err := translate(rule.Regex)
	if err != nil {
		return compiledRule{}, errors.Wrap(err, "invalid pattern")
	}

	re, err := regexp2.Compile(pat.expr, regexp2.None)
	if err != nil {
		return compiledRule{}, errors.Wrap(err, "invalid pattern")
	}

	if n := len(re.GetGroupNumbers()) - 1; n != pat.groups {
		return compiledRule{}, errors.Newf("invalid pattern: unsupported group syntax (%d groups, expected %d)", n, pat.groups)
	}

	re.MatchTimeout = MatchTimeout

	tmpl, err := parseTemplate(rule.ReplaceWith, pat)
	if err != nil {
		return compiledRule{}, errors.Wrap(err, "invalid replacement template")
	}

	return compiledRule{source: rule.Regex, re: re, tmpl: tmpl}, nil
}

// Len returns the number of rules.
func (p *Program) Len() int {
	return len(p.rules)
}

// Apply runs every rule over text in order, each rule seeing the previous
// rule's output. Every non-overlapping match is replaced; an empty match
// directly after a non-empty one is replaced too. A rule that exceeds
// MatchTimeout fails the whole run with an error marked ErrRuleEvaluation.
func (p *Program) Apply(text string) (string, error) {
	for i, r := range p.rules {
		out, err := r.re.ReplaceFunc(text, r.tmpl.expand, -1, -1)
		if err != nil {
			return "", ruleError(i, r.source, errors.Wrap(err, "matching"))
		}

		text = out
	}

	return text, nil
}

// Apply compiles rules and applies them to text. On error the input is not
// transformed and the returned string is empty.
func Apply(text string, rules []config.Rule) (string, error) {
	p, err := Compile(rules)
	if err != nil {
		return "", err
	}

	return p.Apply(text)
}
