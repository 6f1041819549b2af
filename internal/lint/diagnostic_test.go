package lint

import "testing"

func TestDiagnosticFields(t *testing.T) {
	d := Diagnostic{
		File:     "app.js",
		Line:     10,
		Column:   5,
		RuleID:   "TS001",
		RuleName: "max-parameters",
		Severity: Warning,
		Message:  "function has 4 parameters (max 3)",
	}

	if d.File != "app.js" {
		t.Errorf("expected File %q, got %q", "app.js", d.File)
	}
	if d.Line != 10 {
		t.Errorf("expected Line 10, got %d", d.Line)
	}
	if d.Column != 5 {
		t.Errorf("expected Column 5, got %d", d.Column)
	}
	if d.RuleID != "TS001" {
		t.Errorf("expected RuleID %q, got %q", "TS001", d.RuleID)
	}
	if d.RuleName != "max-parameters" {
		t.Errorf("expected RuleName %q, got %q", "max-parameters", d.RuleName)
	}
	if d.Severity != Warning {
		t.Errorf("expected Severity %q, got %q", Warning, d.Severity)
	}
}

func TestSeverityConstants(t *testing.T) {
	if Error != "error" {
		t.Errorf("expected Error to be %q, got %q", "error", Error)
	}
	if Warning != "warning" {
		t.Errorf("expected Warning to be %q, got %q", "warning", Warning)
	}
}
