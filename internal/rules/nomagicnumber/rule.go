package nomagicnumber

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{Ignore: []float64{0, 1, -1}})
}

// Rule checks that numeric literals are bound to named constants
// instead of appearing inline. Literals initializing a const
// declaration are accepted, as are the values in Ignore.
type Rule struct {
	Ignore        []float64
	IgnoreIndexes bool
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-magic-number" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Numeric literals should be named constants, not inline values"
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "ignore":
			nums, ok := toFloatSlice(v)
			if !ok {
				return fmt.Errorf("no-magic-number: ignore must be a list of numbers, got %T", v)
			}
			r.Ignore = nums
		case "ignore-indexes":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("no-magic-number: ignore-indexes must be a bool, got %T", v)
			}
			r.IgnoreIndexes = b
		default:
			return fmt.Errorf("no-magic-number: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"ignore":         []float64{0, 1, -1},
		"ignore-indexes": false,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	allowed := map[*syntax.NumberLit]bool{}
	minusParent := map[*syntax.NumberLit]*syntax.UnaryExpr{}

	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		switch v := n.(type) {
		case *syntax.VarDecl:
			if v.Keyword == "const" {
				if lit := directNumber(v.Init); lit != nil {
					allowed[lit] = true
				}
			}
		case *syntax.UnaryExpr:
			if v.Op == "-" {
				if lit, ok := v.X.(*syntax.NumberLit); ok {
					minusParent[lit] = v
				}
			}
		case *syntax.IndexExpr:
			if r.IgnoreIndexes {
				if lit, ok := v.Index.(*syntax.NumberLit); ok {
					allowed[lit] = true
				}
			}
		}
		return true
	})

	var diags []lint.Diagnostic
	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		lit, ok := n.(*syntax.NumberLit)
		if !ok {
			return true
		}
		if allowed[lit] {
			return true
		}

		value := lit.Value
		raw := lit.Raw
		span := lit.Span()
		if mp := minusParent[lit]; mp != nil {
			value = -value
			raw = "-" + raw
			span = mp.Span()
		}
		if r.isIgnored(value) {
			return true
		}

		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			Line:     span.Line,
			Column:   span.Col,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Warning,
			Message:  fmt.Sprintf("magic number %s should be a named constant", raw),
		})
		return true
	})

	return diags
}

// directNumber returns the literal when e is a numeric literal or the
// unary minus of one.
func directNumber(e syntax.Expr) *syntax.NumberLit {
	switch v := e.(type) {
	case *syntax.NumberLit:
		return v
	case *syntax.UnaryExpr:
		if v.Op == "-" {
			if lit, ok := v.X.(*syntax.NumberLit); ok {
				return lit
			}
		}
	}
	return nil
}

func (r *Rule) isIgnored(value float64) bool {
	for _, n := range r.Ignore {
		if n == value {
			return true
		}
	}
	return false
}

// toFloatSlice converts a value to []float64. YAML decodes sequences as
// []any with int or float64 elements.
func toFloatSlice(v any) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		return s, true
	case []any:
		result := make([]float64, 0, len(s))
		for _, item := range s {
			switch n := item.(type) {
			case int:
				result = append(result, float64(n))
			case int64:
				result = append(result, float64(n))
			case float64:
				result = append(result, n)
			default:
				return nil, false
			}
		}
		return result, true
	}
	return nil, false
}
