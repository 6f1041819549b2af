package noflagargument

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{})
}

// Rule checks that no call passes a boolean literal as an argument.
// A flag argument means the callee does more than one thing; split it
// into two functions instead.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-flag-argument" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Calls should not pass boolean literals as flag arguments"
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		call, ok := n.(*syntax.CallExpr)
		if !ok {
			return true
		}
		for i, arg := range call.Args {
			lit, ok := arg.(*syntax.BoolLit)
			if !ok {
				continue
			}
			span := lit.Span()
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     span.Line,
				Column:   span.Col,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("boolean flag argument %v in position %d; split the function instead", lit.Value, i+1),
			})
		}
		return true
	})
	return diags
}
