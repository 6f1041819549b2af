package rule

import "github.com/jeduden/tidyscript/internal/lint"

// Rule is a single lint rule that checks a parsed source file. A rule
// is stateless: Check inspects the file's syntax tree and returns zero
// or more diagnostics without mutating the tree.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Check(f *lint.File) []lint.Diagnostic
}

// FixableRule is a Rule that can also auto-fix violations.
type FixableRule interface {
	Rule
	Fix(f *lint.File) []byte
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}
