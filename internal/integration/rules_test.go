package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"

	_ "github.com/jeduden/tidyscript/internal/rules/maxparameters"
	_ "github.com/jeduden/tidyscript/internal/rules/noflagargument"
	_ "github.com/jeduden/tidyscript/internal/rules/noglobalmutation"
	_ "github.com/jeduden/tidyscript/internal/rules/nomagicnumber"
	_ "github.com/jeduden/tidyscript/internal/rules/nounusedfunction"
	_ "github.com/jeduden/tidyscript/internal/rules/novar"
)

var ruleIDPattern = regexp.MustCompile(`^(TS\d+)-`)

type expectedDiag struct {
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message"`
}

// fixtureExpect is the sidecar expect.yml of a fixture directory.
// Settings configure the target rule for the bad and fixed checks;
// good.js is always checked with every rule at its defaults.
type fixtureExpect struct {
	Settings    map[string]any `yaml:"settings"`
	Diagnostics []expectedDiag `yaml:"diagnostics"`
}

// applySettingsToRule applies fixture settings to a rule. It saves and
// restores the default settings after the test to avoid polluting the
// global singleton.
func applySettingsToRule(
	t *testing.T, r rule.Rule, settings map[string]any,
) {
	t.Helper()
	if len(settings) == 0 {
		return
	}

	cr, ok := r.(rule.Configurable)
	if !ok {
		t.Fatalf(
			"fixture specifies settings but rule %s does not implement Configurable",
			r.ID(),
		)
	}

	defaults := cr.DefaultSettings()
	t.Cleanup(func() {
		_ = cr.ApplySettings(defaults)
	})

	if err := cr.ApplySettings(settings); err != nil {
		t.Fatalf("applying settings: %v", err)
	}
}

func TestRuleFixtures(t *testing.T) {
	dirs := discoverFixtureDirs(t)

	for _, dir := range dirs {
		base := filepath.Base(dir)
		m := ruleIDPattern.FindStringSubmatch(base)
		if m == nil {
			t.Errorf("cannot extract rule ID from directory: %s", base)
			continue
		}
		ruleID := m[1]

		t.Run(ruleID, func(t *testing.T) {
			r := rule.ByID(ruleID)
			if r == nil {
				t.Fatalf("rule %s not found in registry", ruleID)
			}

			expect := loadExpect(t, dir)

			t.Run("good", func(t *testing.T) {
				runGoodFixture(t, dir)
			})
			t.Run("bad", func(t *testing.T) {
				runBadFixture(t, dir, r, ruleID, expect)
			})

			fixedPath := filepath.Join(dir, "fixed.js")
			if _, err := os.Stat(fixedPath); err == nil {
				t.Run("fix", func(t *testing.T) {
					runFixFixture(t, dir, r, ruleID, expect)
				})
			}
		})
	}
}

// runGoodFixture checks that good.js is clean under every registered
// rule at its default settings.
func runGoodFixture(t *testing.T, dir string) {
	t.Helper()
	src := readFixture(t, filepath.Join(dir, "good.js"))
	f, err := lint.NewFile("good.js", src)
	if err != nil {
		t.Fatalf("parsing good.js: %v", err)
	}
	diags := checkAllRules(f)
	reportUnexpectedDiags(t, "good.js", diags)
}

// runBadFixture checks bad.js with the target rule only and compares
// the diagnostics against the expect.yml sidecar.
func runBadFixture(
	t *testing.T, dir string, r rule.Rule, ruleID string, expect fixtureExpect,
) {
	t.Helper()
	applySettingsToRule(t, r, expect.Settings)

	src := readFixture(t, filepath.Join(dir, "bad.js"))
	f, err := lint.NewFile("bad.js", src)
	if err != nil {
		t.Fatalf("parsing bad.js: %v", err)
	}
	diags := filterByRule(r.Check(f), ruleID)
	assertExpectedDiags(t, expect.Diagnostics, diags, "bad.js")
}

// runFixFixture applies the target rule's Fix to bad.js and compares
// the output against fixed.js, which must itself lint clean.
func runFixFixture(
	t *testing.T, dir string, r rule.Rule, ruleID string, expect fixtureExpect,
) {
	t.Helper()
	fr, ok := r.(rule.FixableRule)
	if !ok {
		t.Fatalf(
			"fixed.js exists but rule %s does not implement FixableRule",
			ruleID,
		)
	}

	applySettingsToRule(t, r, expect.Settings)

	badSrc := readFixture(t, filepath.Join(dir, "bad.js"))
	f, err := lint.NewFile("bad.js", badSrc)
	if err != nil {
		t.Fatalf("parsing bad.js: %v", err)
	}

	got := fr.Fix(f)
	want := readFixture(t, filepath.Join(dir, "fixed.js"))

	if !bytes.Equal(got, want) {
		t.Errorf(
			"Fix output does not match fixed.js\ngot:\n%s\nwant:\n%s",
			formatBytes(got), formatBytes(want),
		)
	}

	fixedFile, err := lint.NewFile("fixed.js", want)
	if err != nil {
		t.Fatalf("parsing fixed.js: %v", err)
	}
	diags := checkAllRules(fixedFile)
	reportUnexpectedDiags(t, "fixed.js", diags)
}

// --- helpers ---

func discoverFixtureDirs(t *testing.T) []string {
	t.Helper()
	dirs, err := filepath.Glob("testdata/TS*-*")
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) == 0 {
		t.Fatal("no rule fixture directories found")
	}
	return dirs
}

func loadExpect(t *testing.T, dir string) fixtureExpect {
	t.Helper()
	data := readFixture(t, filepath.Join(dir, "expect.yml"))
	var expect fixtureExpect
	if err := yaml.Unmarshal(data, &expect); err != nil {
		t.Fatalf("decoding expect.yml: %v", err)
	}
	return expect
}

func reportUnexpectedDiags(
	t *testing.T, filename string, diags []lint.Diagnostic,
) {
	t.Helper()
	if len(diags) != 0 {
		t.Errorf(
			"%s: expected 0 diagnostics from all rules, got %d",
			filename, len(diags),
		)
		for _, d := range diags {
			t.Logf(
				"  %s line %d col %d: %s",
				d.RuleID, d.Line, d.Column, d.Message,
			)
		}
	}
}

func assertExpectedDiags(
	t *testing.T,
	expected []expectedDiag,
	diags []lint.Diagnostic,
	filename string,
) {
	t.Helper()
	if len(expected) == 0 {
		if len(diags) == 0 {
			t.Errorf(
				"%s: expected at least 1 diagnostic, got 0",
				filename,
			)
		}
		return
	}
	if len(diags) != len(expected) {
		t.Errorf(
			"%s: expected %d diagnostics, got %d",
			filename, len(expected), len(diags),
		)
		for _, d := range diags {
			t.Logf(
				"  actual: line %d col %d: %s",
				d.Line, d.Column, d.Message,
			)
		}
	}
	for i, exp := range expected {
		if i >= len(diags) {
			t.Errorf(
				"missing diagnostic %d: line %d col %d: %s",
				i, exp.Line, exp.Column, exp.Message,
			)
			continue
		}
		d := diags[i]
		if d.Line != exp.Line || d.Column != exp.Column || d.Message != exp.Message {
			t.Errorf(
				"diagnostic %d:\n  want: line %d col %d: %s\n  got:  line %d col %d: %s",
				i, exp.Line, exp.Column, exp.Message,
				d.Line, d.Column, d.Message,
			)
		}
	}
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

func checkAllRules(f *lint.File) []lint.Diagnostic {
	var all []lint.Diagnostic
	for _, r := range rule.All() {
		all = append(all, r.Check(f)...)
	}
	return all
}

func filterByRule(
	diags []lint.Diagnostic, ruleID string,
) []lint.Diagnostic {
	var filtered []lint.Diagnostic
	for _, d := range diags {
		if d.RuleID == ruleID {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func formatBytes(b []byte) string {
	s := string(b)
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, " \n", "\u00b7\\n")
	return s
}
