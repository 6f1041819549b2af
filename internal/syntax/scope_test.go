package syntax

import "testing"

func globalAssignTargets(t *testing.T, src string) []string {
	t.Helper()
	prog := parse(t, src)
	var names []string
	for _, a := range GlobalAssignments(prog) {
		names = append(names, a.Target.(*Ident).Name)
	}
	return names
}

func TestGlobalAssignments_LocalNotFlagged(t *testing.T) {
	src := `
function splitName(name) {
  let parts = null
  parts = name.split(' ')
  return parts
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments, got %v", got)
	}
}

func TestGlobalAssignments_ModuleBindingFlagged(t *testing.T) {
	src := `
let name = 'Ryan'
function splitIntoFirstAndLastName() {
  name = name.split(' ')
}`
	got := globalAssignTargets(t, src)
	if len(got) != 1 || got[0] != "name" {
		t.Fatalf("expected [name], got %v", got)
	}
}

func TestGlobalAssignments_ImplicitGlobalFlagged(t *testing.T) {
	src := `
function leak() {
  cache = []
}`
	got := globalAssignTargets(t, src)
	if len(got) != 1 || got[0] != "cache" {
		t.Fatalf("expected [cache], got %v", got)
	}
}

func TestGlobalAssignments_TopLevelReassignmentFlagged(t *testing.T) {
	src := "let total = 0\ntotal = total + 1\n"
	got := globalAssignTargets(t, src)
	if len(got) != 1 || got[0] != "total" {
		t.Fatalf("expected [total], got %v", got)
	}
}

func TestGlobalAssignments_ParameterNotFlagged(t *testing.T) {
	src := `
function accumulate(total, n) {
  total = total + n
  return total
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments, got %v", got)
	}
}

func TestGlobalAssignments_ShadowingNotFlagged(t *testing.T) {
	src := `
let count = 0
function scoped() {
  let count = 0
  count = 1
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments, got %v", got)
	}
}

func TestGlobalAssignments_BlockScopeInsideFunction(t *testing.T) {
	src := `
function f(flag) {
  let x = 0
  if (flag) {
    x = 1
  }
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments, got %v", got)
	}
}

func TestGlobalAssignments_FunctionExpressionScope(t *testing.T) {
	src := `
const inc = function(n) {
  n = n + 1
  return n
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments, got %v", got)
	}
}

func TestGlobalAssignments_UseBeforeDecl(t *testing.T) {
	// Hoisting: the function is declared after the module binding it
	// mutates, and the binding is declared after the function.
	src := `
function bump() {
  counter = counter + 1
}
let counter = 0
`
	got := globalAssignTargets(t, src)
	if len(got) != 1 || got[0] != "counter" {
		t.Fatalf("expected [counter], got %v", got)
	}
}

func TestGlobalAssignments_MemberTargetIgnored(t *testing.T) {
	src := `
let config = null
function tweak() {
  config.debug = true
}`
	if got := globalAssignTargets(t, src); len(got) != 0 {
		t.Errorf("expected no global assignments for member target, got %v", got)
	}
}
