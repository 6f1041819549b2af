package engine

import (
	"fmt"

	"github.com/jeduden/tidyscript/internal/config"
	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/rule"
)

// RuleError reports a rule that panicked while checking a file. The run
// continues with the remaining rules and files.
type RuleError struct {
	RuleID string
	Path   string
	Value  any
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s failed on %s: %v", e.RuleID, e.Path, e.Value)
}

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// CheckRules runs all enabled rules against f, cloning and applying
// settings for Configurable rules. A panicking rule is reported as a
// *RuleError and does not stop the other rules. It adjusts diagnostics
// using f.AdjustDiagnostics and returns the collected diagnostics and
// any errors.
func CheckRules(f *lint.File, rules []rule.Rule, effective map[string]config.RuleCfg) ([]lint.Diagnostic, []error) {
	var diags []lint.Diagnostic
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		checkRule, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		d, err := runRule(checkRule, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		diags = append(diags, d...)
	}

	f.AdjustDiagnostics(diags)
	return diags, errs
}

func runRule(rl rule.Rule, f *lint.File) (diags []lint.Diagnostic, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			diags = nil
			err = &RuleError{RuleID: rl.ID(), Path: f.Path, Value: rec}
		}
	}()
	return rl.Check(f), nil
}
