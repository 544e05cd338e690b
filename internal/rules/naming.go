package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

// slugPattern validates charm, action, and option names: lowercase
// alphanumeric words separated by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func isValidSlug(name string) bool {
	return slugPattern.MatchString(name)
}

// CharmNameRule checks the charm name against the naming best practice.
type CharmNameRule struct{}

var _ Rule = (*CharmNameRule)(nil)

func (*CharmNameRule) ID() string { return "charm-name" }

func (*CharmNameRule) Description() string {
	return "The name should be slug-oriented (ASCII lowercase letters, numbers, and hyphens) " +
		"and follow the pattern `<workload name in full>[<function>][-k8s]`. For example, `argo-server-k8s`."
}

func (*CharmNameRule) Applies(c *charm.Charm) bool { return true }

func (r *CharmNameRule) Evaluate(c *charm.Charm) Result {
	if c.Name == "" {
		return fail(r.ID(), "charm name is not set in charmcraft.yaml")
	}
	if !isValidSlug(c.Name) {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("name %q is not lowercase alphanumeric with single hyphens", c.Name),
			Evidence: "charmcraft.yaml: name",
		}
	}
	return pass(r.ID(), "")
}

// ActionNamesRule checks that every declared action follows the naming
// best practice. Charms without actions are out of scope for this rule.
type ActionNamesRule struct{}

var _ Rule = (*ActionNamesRule)(nil)

func (*ActionNamesRule) ID() string { return "action-names" }

func (*ActionNamesRule) Description() string {
	return "Prefer lowercase alphanumeric action names, and use hyphens (-) to separate words."
}

func (*ActionNamesRule) Applies(c *charm.Charm) bool {
	return c.Metadata != nil && len(c.Metadata.Actions) > 0
}

func (r *ActionNamesRule) Evaluate(c *charm.Charm) Result {
	bad := invalidSlugs(c.Metadata.Actions)
	if len(bad) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("action name(s) not following best practices: %s", strings.Join(bad, ", ")),
			Evidence: "charmcraft.yaml: actions",
		}
	}
	return pass(r.ID(), "")
}

// OptionNamesRule checks config option names the same way.
type OptionNamesRule struct{}

var _ Rule = (*OptionNamesRule)(nil)

func (*OptionNamesRule) ID() string { return "option-names" }

func (*OptionNamesRule) Description() string {
	return "Prefer lowercase alphanumeric config option names, separated with dashes if required."
}

func (*OptionNamesRule) Applies(c *charm.Charm) bool {
	return c.Metadata != nil && len(c.Metadata.Config.Options) > 0
}

func (r *OptionNamesRule) Evaluate(c *charm.Charm) Result {
	bad := invalidSlugs(c.Metadata.Config.Options)
	if len(bad) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("option name(s) not following best practices: %s", strings.Join(bad, ", ")),
			Evidence: "charmcraft.yaml: config.options",
		}
	}
	return pass(r.ID(), "")
}

// invalidSlugs returns the sorted keys of m that are not valid slugs.
func invalidSlugs(m map[string]any) []string {
	var bad []string
	for name := range m {
		if !isValidSlug(name) {
			bad = append(bad, name)
		}
	}
	sort.Strings(bad)
	return bad
}

// RepositoryNameRule checks that the repository is named
// `<charm name>-operator` (or `-operators` for a multi-charm repository).
// Without a repository URL the rule is not applicable.
type RepositoryNameRule struct{}

var _ Rule = (*RepositoryNameRule)(nil)

func (*RepositoryNameRule) ID() string { return "repository-name" }

func (*RepositoryNameRule) Description() string {
	return "Name the repository using the pattern `<charm name>-operator` for a single charm, " +
		"or `<base charm name>-operators` when the repository will hold multiple related charms."
}

func (*RepositoryNameRule) Applies(c *charm.Charm) bool {
	return c.RepoURL != "" && c.Name != ""
}

func (r *RepositoryNameRule) Evaluate(c *charm.Charm) Result {
	repoName := c.RepoName()
	if repoName == c.Name+"-operator" || repoName == c.Name+"-operators" {
		return pass(r.ID(), "")
	}
	return Result{
		RuleID:   r.ID(),
		Status:   StatusFail,
		Message:  fmt.Sprintf("repository %q does not follow the %s-operator[s] pattern", repoName, c.Name),
		Evidence: c.RepoURL,
	}
}
