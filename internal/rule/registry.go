package rule

import "fmt"

var registry []Rule

// DuplicateRuleError reports an attempt to register two rules with the
// same ID.
type DuplicateRuleError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %s registered twice", e.ID)
}

// Register adds a rule to the global registry. It fails with a
// *DuplicateRuleError when a rule with the same ID is already present.
func Register(r Rule) error {
	for _, existing := range registry {
		if existing.ID() == r.ID() {
			return &DuplicateRuleError{ID: r.ID()}
		}
	}
	registry = append(registry, r)
	return nil
}

// MustRegister registers a rule and panics on a duplicate ID. Built-in
// rule packages call it from init(), so a duplicate is fatal before any
// file is analyzed.
func MustRegister(r Rule) {
	if err := Register(r); err != nil {
		panic(err)
	}
}

// All returns a copy of all registered rules.
func All() []Rule {
	result := make([]Rule, len(registry))
	copy(result, registry)
	return result
}

// ByID returns the registered rule with the given ID, or nil.
func ByID(id string) Rule {
	for _, r := range registry {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// Reset clears the registry. Used for testing.
func Reset() {
	registry = nil
}
