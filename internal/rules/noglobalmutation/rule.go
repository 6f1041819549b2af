package noglobalmutation

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{})
}

// Rule checks that no assignment mutates a module-level binding. The
// target identifier is resolved by lexical scope lookup; a target with
// no declaration at all is an implicit global and is also flagged.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-global-mutation" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Assignments must not mutate module-level bindings"
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, a := range syntax.GlobalAssignments(f.Program) {
		target := a.Target.(*syntax.Ident)
		span := a.Span()
		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			Line:     span.Line,
			Column:   span.Col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("assignment mutates module-level binding %q", target.Name),
		})
	}
	return diags
}
