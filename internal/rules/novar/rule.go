package novar

import (
	"bytes"
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{})
}

// Rule checks that declarations use const or let. var is function-scoped
// and hoisted, which makes bindings leak out of the block they appear in.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-var" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Declarations must use const or let instead of var"
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		d, ok := n.(*syntax.VarDecl)
		if !ok || d.Keyword != "var" {
			return true
		}
		span := d.Span()
		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			Line:     span.Line,
			Column:   span.Col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("use let instead of var for %q", d.Name.Name),
		})
		return true
	})
	return diags
}

// Fix implements rule.FixableRule. Every var keyword becomes let; the
// token stream gives exact byte offsets, so strings and comments that
// happen to contain "var" are untouched.
func (r *Rule) Fix(f *lint.File) []byte {
	var buf bytes.Buffer
	last := 0
	for _, tok := range f.Tokens {
		if tok.Kind != syntax.KwVar {
			continue
		}
		buf.Write(f.Source[last:tok.Span.Start])
		buf.WriteString("let")
		last = tok.Span.End
	}
	buf.Write(f.Source[last:])
	return buf.Bytes()
}
