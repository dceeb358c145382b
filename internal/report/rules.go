// Package report renders rule diagnostics for the command line.
package report

import (
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"clipregex/internal/config"
	"clipregex/internal/replace"
)

const statusOK = "ok"

// RenderRules writes one row per rule with its compile status and returns
// the number of failing rules.
func RenderRules(w io.Writer, rules []config.Rule) (int, error) {
	errs := replace.Validate(rules)

	t := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"#", "Regex", "Replace with", "Status"})

	failed := 0

	for i, rule := range rules {
		status := statusOK

		if errs[i] != nil {
			failed++
			status = cause(errs[i])
		}

		if err := t.Append([]string{strconv.Itoa(i), rule.Regex, rule.ReplaceWith, status}); err != nil {
			return failed, err
		}
	}

	return failed, t.Render()
}

// cause strips the rule prefix; the table already shows index and pattern.
func cause(err error) string {
	var re *replace.RuleError
	if errors.As(err, &re) {
		return re.Err.Error()
	}

	return err.Error()
}
