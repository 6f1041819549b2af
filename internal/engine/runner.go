package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/jeduden/tidyscript/internal/config"
	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
	"github.com/jeduden/tidyscript/internal/syntax"
)

// SyntaxRuleID is the pseudo-rule reported when a file does not parse.
// It cannot be disabled from configuration.
const SyntaxRuleID = "TS000"

// Runner drives the linting pipeline: for each file it reads the content,
// builds a File (parsing the AST once), determines the effective rule
// configuration, runs enabled rules, and collects diagnostics. Markdown
// documents are linted one fenced code snippet at a time.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
}

// Result holds the output of a lint run.
type Result struct {
	Diagnostics []lint.Diagnostic
	Errors      []error
}

// Run lints the files at the given paths and returns a Result containing
// all diagnostics (sorted by file, line, column) and any errors encountered.
func (r *Runner) Run(paths []string) *Result {
	res := &Result{}

	for _, path := range paths {
		if r.isIgnored(path) {
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}

		r.lintSource(path, source, res)
	}

	sortDiagnostics(res.Diagnostics)
	return res
}

// RunSource lints a single in-memory source, e.g. content piped on stdin.
// path is used for reporting and for override matching only.
func (r *Runner) RunSource(path string, source []byte) *Result {
	res := &Result{}
	r.lintSource(path, source, res)
	sortDiagnostics(res.Diagnostics)
	return res
}

func (r *Runner) lintSource(path string, source []byte, res *Result) {
	if lint.IsMarkdown(path) {
		langs := r.Config.SnippetLanguages
		if len(langs) == 0 {
			langs = config.DefaultSnippetLanguages
		}
		for _, sn := range lint.ExtractSnippets(source, langs) {
			r.lintScript(path, []byte(sn.Source), sn.StartLine-1, res)
		}
		return
	}
	r.lintScript(path, source, 0, res)
}

// lintScript parses one script unit and runs the enabled rules over it.
// A parse failure becomes a single TS000 diagnostic; the run continues
// with the remaining units.
func (r *Runner) lintScript(path string, source []byte, lineOffset int, res *Result) {
	f, err := lint.NewFile(path, source)
	if err != nil {
		line, col := 1, 1
		msg := err.Error()
		var serr *syntax.Error
		if errors.As(err, &serr) {
			line, col, msg = serr.Line, serr.Col, serr.Msg
		}
		res.Diagnostics = append(res.Diagnostics, lint.Diagnostic{
			File:     path,
			Line:     line + lineOffset,
			Column:   col,
			RuleID:   SyntaxRuleID,
			RuleName: "syntax",
			Severity: lint.Error,
			Message:  msg,
		})
		return
	}
	f.LineOffset = lineOffset

	effective := config.Effective(r.Config, path)
	diags, errs := CheckRules(f, r.Rules, effective)
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.Errors = append(res.Errors, errs...)
}

func sortDiagnostics(diags []lint.Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		di, dj := diags[i], diags[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})
}

// isIgnored returns true if the file path matches any of the configured
// ignore patterns.
func (r *Runner) isIgnored(path string) bool {
	cleanPath := filepath.Clean(path)

	for _, pattern := range r.Config.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}
