package nounusedfunction

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{})
}

// Rule checks that every declared function is referenced somewhere in
// the file. Dead code still ships, still confuses readers and still
// has to be maintained; delete it instead.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-unused-function" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Declared functions must be used; remove dead code"
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	// Identifiers that name a binding rather than reference one.
	binding := map[*syntax.Ident]bool{}
	var decls []*syntax.FuncDecl

	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		switch v := n.(type) {
		case *syntax.FuncDecl:
			binding[v.Name] = true
			for _, p := range v.Params {
				binding[p] = true
			}
			decls = append(decls, v)
		case *syntax.FuncLit:
			if v.Name != nil {
				binding[v.Name] = true
			}
			for _, p := range v.Params {
				binding[p] = true
			}
		case *syntax.VarDecl:
			binding[v.Name] = true
		case *syntax.MemberExpr:
			binding[v.Property] = true
		}
		return true
	})

	// Count references by name.
	referenced := map[string]bool{}
	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		if id, ok := n.(*syntax.Ident); ok && !binding[id] {
			referenced[id.Name] = true
		}
		return true
	})

	var diags []lint.Diagnostic
	for _, d := range decls {
		if referenced[d.Name.Name] {
			continue
		}
		span := d.Span()
		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			Line:     span.Line,
			Column:   span.Col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("function %q is never used; remove dead code", d.Name.Name),
		})
	}
	return diags
}
