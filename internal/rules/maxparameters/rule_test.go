package maxparameters

import (
	"testing"

	"github.com/jeduden/tidyscript/internal/lint"
)

func mustFile(t *testing.T, src string) *lint.File {
	t.Helper()
	f, err := lint.NewFile("test.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCheck_WithinLimitNoReport(t *testing.T) {
	f := mustFile(t, "function add(a, b, c) { return a + b + c }")
	r := &Rule{Max: 3}
	diags := r.Check(f)
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_FourParamsThresholdThree(t *testing.T) {
	f := mustFile(t, "function createMenu(title, body, buttonText, cancellable) {}")
	r := &Rule{Max: 3}
	diags := r.Check(f)
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.RuleID != "TS001" {
		t.Errorf("expected rule ID TS001, got %s", d.RuleID)
	}
	if d.Line != 1 || d.Column != 1 {
		t.Errorf("expected diagnostic at the declaration span 1:1, got %d:%d", d.Line, d.Column)
	}
	expected := "function has 4 parameters (max 3)"
	if d.Message != expected {
		t.Errorf("expected message %q, got %q", expected, d.Message)
	}
}

func TestCheck_CustomMax(t *testing.T) {
	f := mustFile(t, "function f(a, b, c, d) {}")
	r := &Rule{Max: 4}
	if diags := r.Check(f); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics with max=4, got %d", len(diags))
	}
}

func TestCheck_FunctionExpressionCounted(t *testing.T) {
	f := mustFile(t, "const h = function(a, b, c, d) { return a }")
	r := &Rule{Max: 3}
	diags := r.Check(f)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for function expression, got %d", len(diags))
	}
}

func TestCheck_NestedFunctionsEachChecked(t *testing.T) {
	src := `
function outer(a, b, c, d) {
  function inner(e, f, g, h) {}
}`
	f := mustFile(t, src)
	r := &Rule{Max: 3}
	diags := r.Check(f)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
}

func TestApplySettings_Max(t *testing.T) {
	r := &Rule{Max: 3}
	if err := r.ApplySettings(map[string]any{"max": 5}); err != nil {
		t.Fatal(err)
	}
	if r.Max != 5 {
		t.Errorf("expected Max=5, got %d", r.Max)
	}
}

func TestApplySettings_InvalidType(t *testing.T) {
	r := &Rule{Max: 3}
	if err := r.ApplySettings(map[string]any{"max": "five"}); err == nil {
		t.Error("expected error for non-integer max")
	}
}

func TestApplySettings_UnknownKey(t *testing.T) {
	r := &Rule{Max: 3}
	if err := r.ApplySettings(map[string]any{"bogus": 1}); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestCheck_Idempotent(t *testing.T) {
	f := mustFile(t, "function f(a, b, c, d) {}")
	r := &Rule{Max: 3}
	first := r.Check(f)
	second := r.Check(f)
	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("diagnostic %d differs between runs", i)
		}
	}
}
