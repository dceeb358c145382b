package replace

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrRuleEvaluation marks a rule whose pattern or template cannot be used.
var ErrRuleEvaluation = errors.New("rule evaluation failed")

// RuleError locates a failing rule within the configured list.
type RuleError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%q): %v", e.Index, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func ruleError(index int, pattern string, err error) error {
	return errors.Mark(errors.WithStack(&RuleError{Index: index, Pattern: pattern, Err: err}), ErrRuleEvaluation)
}
