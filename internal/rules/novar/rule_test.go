package novar

import (
	"testing"

	"github.com/jeduden/tidyscript/internal/lint"
)

func mustFile(t *testing.T, src string) *lint.File {
	t.Helper()
	f, err := lint.NewFile("test.js", []byte(src))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f
}

func TestVarFlagged(t *testing.T) {
	src := `var count = 1;
let total = 2;
const limit = 3;
count = total + limit;
`
	r := &Rule{}
	diags := r.Check(mustFile(t, src))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Line != 1 || d.Column != 1 {
		t.Errorf("expected position 1:1, got %d:%d", d.Line, d.Column)
	}
	want := `use let instead of var for "count"`
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
}

func TestVarInsideFunctionFlagged(t *testing.T) {
	src := `function totals(items) {
	var sum = 0;
	return sum;
}
totals([]);
`
	r := &Rule{}
	diags := r.Check(mustFile(t, src))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Line != 2 {
		t.Errorf("expected line 2, got %d", diags[0].Line)
	}
}

func TestFixRewritesVarToLet(t *testing.T) {
	src := `var a = 1;
var b = "var inside a string";
// var inside a comment
let c = 3;
`
	want := `let a = 1;
let b = "var inside a string";
// var inside a comment
let c = 3;
`
	r := &Rule{}
	got := r.Fix(mustFile(t, src))
	if string(got) != want {
		t.Errorf("Fix = %q, want %q", got, want)
	}
}

func TestFixNoVarIsIdentity(t *testing.T) {
	src := `const a = 1;
let b = a + 1;
b = b + a;
`
	r := &Rule{}
	got := r.Fix(mustFile(t, src))
	if string(got) != src {
		t.Errorf("Fix changed source without var: %q", got)
	}
}
