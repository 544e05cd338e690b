package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/charm"
	"github.com/canonical/charmhub-listing-review/internal/validation"
)

// MetadataLinksRule requires non-default name, title, summary, and
// description, plus a links section whose documentation, issues, source,
// and contact URLs all resolve.
type MetadataLinksRule struct{}

var _ Rule = (*MetadataLinksRule)(nil)

func (*MetadataLinksRule) ID() string { return "metadata-links" }

func (*MetadataLinksRule) Description() string {
	return "charmcraft.yaml includes required metadata: name, title, summary, description, " +
		"and links for documentation, issues, source, and contact."
}

func (*MetadataLinksRule) Applies(c *charm.Charm) bool { return true }

func (r *MetadataLinksRule) Evaluate(c *charm.Charm) Result {
	if c.Metadata == nil {
		msg := "charmcraft.yaml is missing"
		if c.MetadataErr != "" {
			return unknown(r.ID(), "could not parse charmcraft.yaml: "+c.MetadataErr)
		}
		return fail(r.ID(), msg)
	}
	md := c.Metadata

	var missing []string
	if md.Name == "" {
		missing = append(missing, "name")
	}
	if md.IsDefaultTitle() {
		missing = append(missing, "title")
	}
	if md.IsDefaultSummary() {
		missing = append(missing, "summary")
	}
	if md.IsDefaultDescription() {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("missing or template-default field(s): %s", strings.Join(missing, ", ")),
			Evidence: "charmcraft.yaml",
		}
	}

	linkFields := []struct {
		name string
		urls []string
	}{
		{"documentation", []string{md.Links.Documentation}},
		{"issues", md.Links.Issues},
		{"source", md.Links.Source},
		{"contact", []string{md.Links.Contact}},
	}
	var badLinks []string
	for _, lf := range linkFields {
		ok := len(lf.urls) > 0
		for _, url := range lf.urls {
			if url == "" || !c.ProbeOK(url) {
				ok = false
			}
		}
		if !ok {
			badLinks = append(badLinks, lf.name)
		}
	}
	sort.Strings(badLinks)
	if len(badLinks) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("links missing or not resolving: %s", strings.Join(badLinks, ", ")),
			Evidence: "charmcraft.yaml: links",
		}
	}
	return pass(r.ID(), "")
}

// MetadataSchemaRule validates charmcraft.yaml against the charmcraft
// schema. A missing file is covered by metadata-links, so this rule only
// applies when the document was parsed.
type MetadataSchemaRule struct{}

var _ Rule = (*MetadataSchemaRule)(nil)

func (*MetadataSchemaRule) ID() string { return "metadata-schema" }

func (*MetadataSchemaRule) Description() string {
	return "charmcraft.yaml is valid against the charmcraft schema."
}

func (*MetadataSchemaRule) Applies(c *charm.Charm) bool {
	return c.MetadataRaw != nil
}

func (r *MetadataSchemaRule) Evaluate(c *charm.Charm) Result {
	errs := validation.ValidateCharmcraft(c.MetadataRaw)
	if len(errs) == 0 {
		return pass(r.ID(), "")
	}
	return Result{
		RuleID:   r.ID(),
		Status:   StatusFail,
		Message:  fmt.Sprintf("%d schema violation(s)", len(errs)),
		Evidence: strings.Join(errs, "; "),
	}
}

// RelationsOptionalRule requires every requires/provides endpoint to carry
// an explicit `optional` key. Charms without relations are out of scope.
type RelationsOptionalRule struct{}

var _ Rule = (*RelationsOptionalRule)(nil)

func (*RelationsOptionalRule) ID() string { return "relations-optional" }

func (*RelationsOptionalRule) Description() string {
	return "Always include the `optional` key on relations, rather than relying on the default " +
		"value to indicate that the relation is required."
}

func (*RelationsOptionalRule) Applies(c *charm.Charm) bool {
	return c.Metadata != nil && (len(c.Metadata.Requires) > 0 || len(c.Metadata.Provides) > 0)
}

func (r *RelationsOptionalRule) Evaluate(c *charm.Charm) Result {
	var missing []string
	for section, endpoints := range map[string]map[string]charm.Relation{
		"requires": c.Metadata.Requires,
		"provides": c.Metadata.Provides,
	} {
		for name, rel := range endpoints {
			if rel.Optional == nil {
				missing = append(missing, section+"."+name)
			}
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("relation(s) without the optional key: %s", strings.Join(missing, ", ")),
			Evidence: "charmcraft.yaml: requires/provides",
		}
	}
	return pass(r.ID(), "")
}
