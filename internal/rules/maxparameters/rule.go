package maxparameters

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

func init() {
	rule.MustRegister(&Rule{Max: 3})
}

// Rule checks that no function takes more than Max parameters.
type Rule struct {
	Max int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "TS001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "max-parameters" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Functions should take a limited number of parameters"
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max":
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("max-parameters: max must be an integer, got %T", v)
			}
			if n < 1 {
				return fmt.Errorf("max-parameters: max must be at least 1, got %d", n)
			}
			r.Max = n
		default:
			return fmt.Errorf("max-parameters: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max": 3,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	max := r.Max
	if max <= 0 {
		max = 3
	}

	var diags []lint.Diagnostic
	syntax.Inspect(f.Program, func(n syntax.Node) bool {
		var params int
		switch fn := n.(type) {
		case *syntax.FuncDecl:
			params = len(fn.Params)
		case *syntax.FuncLit:
			params = len(fn.Params)
		default:
			return true
		}

		if params > max {
			span := n.Span()
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     span.Line,
				Column:   span.Col,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("function has %d parameters (max %d)", params, max),
			})
		}
		return true
	})

	return diags
}

// toInt converts a value to int. Supports int and float64 (YAML decodes
// numbers as int or float64 depending on context).
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

var _ rule.Configurable = (*Rule)(nil)
