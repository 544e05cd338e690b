package rules

import "github.com/canonical/charmhub-listing-review/internal/charm"

// manualRule is a criterion that cannot be automated. It stays in the
// registry so the checklist surfaces it, and always reports unknown.
type manualRule struct {
	id          string
	description string
}

var _ Rule = (*manualRule)(nil)

func (m *manualRule) ID() string          { return m.id }
func (m *manualRule) Description() string { return m.description }

func (m *manualRule) Applies(c *charm.Charm) bool { return true }

func (m *manualRule) Evaluate(c *charm.Charm) Result {
	return unknown(m.id, "requires manual review")
}

// ManualRules returns the manual-only criteria in checklist order.
func ManualRules() []Rule {
	return []Rule{
		&manualRule{
			id:          "behaves-as-documented",
			description: "The charm does what it is meant to do, per the demo or tutorial.",
		},
		&manualRule{
			id: "charmhub-appearance",
			description: "The charm's page on Charmhub provides a quality impression. The overall " +
				"appearance looks good and the documentation looks reasonable.",
		},
		&manualRule{
			id:          "automated-releasing",
			description: "Automated releasing to unstable channels exists.",
		},
		&manualRule{
			id: "integration-tests",
			description: "Integration tests exist, are run on every change to the default branch, " +
				"and are passing.",
		},
	}
}
