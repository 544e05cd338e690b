package rules

import "fmt"

// DuplicateRuleError reports a rule id collision during registration.
// Registration happens once at startup, so this is a configuration fault
// the process must not continue past.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.ID)
}

// Registry holds the rules for a review run in registration order. It is
// populated during process initialization and treated as immutable for the
// rest of the process lifetime.
type Registry struct {
	ordered []Rule
	byID    map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

// Register adds a rule. A duplicate id returns DuplicateRuleError and
// leaves the registry unchanged.
func (r *Registry) Register(rule Rule) error {
	id := rule.ID()
	if _, exists := r.byID[id]; exists {
		return &DuplicateRuleError{ID: id}
	}
	r.byID[id] = rule
	r.ordered = append(r.ordered, rule)
	return nil
}

// Rules returns the registered rules in registration order. The engine
// iterates this order, so reports are stable across runs.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Lookup returns the rule with the given id, if registered.
func (r *Registry) Lookup(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// DefaultRegistry builds the registry with every built-in listing rule, in
// the order the checklist presents them.
func DefaultRegistry() (*Registry, error) {
	reg := NewRegistry()
	builtin := []Rule{
		&LintWorkflowRule{},
		&ContributionGuidelinesRule{},
		&LicenseRule{},
		&SecurityDocRule{},
		&MetadataLinksRule{},
		&MetadataSchemaRule{},
		&CharmNameRule{},
		&ActionNamesRule{},
		&OptionNamesRule{},
		&RepositoryNameRule{},
		&RelationsOptionalRule{},
		&ToolingRule{},
		&StrictDependenciesRule{},
		&RequiresPythonRule{},
		&LockFileRule{},
		&IconRule{},
	}
	builtin = append(builtin, ManualRules()...)
	for _, rule := range builtin {
		if err := reg.Register(rule); err != nil {
			return nil, fmt.Errorf("building default registry: %w", err)
		}
	}
	return reg, nil
}
