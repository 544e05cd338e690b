package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

const fullCharmcraft = `name: demo-charm
type: charm
title: Demo Charm
summary: A demonstration charm.
description: |
  A charm used for demonstrations.
links:
  documentation: https://example.com/docs
  issues: https://example.com/issues
  source: https://example.com/demo-charm-operator
  contact: https://example.com/contact
`

func TestMetadataLinksRule(t *testing.T) {
	rule := &MetadataLinksRule{}

	t.Run("missing charmcraft.yaml fails", func(t *testing.T) {
		c := loadCharm(t, nil)
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "charmcraft.yaml is missing")
	})

	t.Run("unparsable charmcraft.yaml is unknown", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": ":\nnot yaml: ["})
		result := rule.Evaluate(c)
		require.Equal(t, StatusUnknown, result.Status)
	})

	t.Run("template defaults fail", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": `name: demo-charm
type: charm
title: Charm Template
summary: A demonstration charm.
description: |
  A charm used for demonstrations.
`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "title")
	})

	t.Run("all links resolving passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": fullCharmcraft})
		c.AttachProbes(okProbes(
			"https://example.com/docs",
			"https://example.com/issues",
			"https://example.com/demo-charm-operator",
			"https://example.com/contact",
		))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("unresolving links are listed sorted", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": fullCharmcraft})
		c.AttachProbes(okProbes(
			"https://example.com/issues",
			"https://example.com/demo-charm-operator",
		))
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "contact, documentation")
	})

	t.Run("list-valued links are probed per URL", func(t *testing.T) {
		listCharmcraft := `name: demo-charm
type: charm
title: Demo Charm
summary: A demonstration charm.
description: |
  A charm used for demonstrations.
links:
  documentation: https://example.com/docs
  issues:
    - https://example.com/issues
    - https://example.com/bugs
  source:
    - https://example.com/demo-charm-operator
  contact: https://example.com/contact
`
		c := loadCharm(t, map[string]string{"charmcraft.yaml": listCharmcraft})
		c.AttachProbes(okProbes(
			"https://example.com/docs",
			"https://example.com/issues",
			"https://example.com/bugs",
			"https://example.com/demo-charm-operator",
			"https://example.com/contact",
		))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)

		c = loadCharm(t, map[string]string{"charmcraft.yaml": listCharmcraft})
		c.AttachProbes(okProbes(
			"https://example.com/docs",
			"https://example.com/issues",
			"https://example.com/demo-charm-operator",
			"https://example.com/contact",
		))
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "issues")
	})

	t.Run("missing links section fails", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "links missing or not resolving")
	})
}

func TestMetadataSchemaRule(t *testing.T) {
	rule := &MetadataSchemaRule{}

	t.Run("not applicable without a parsed document", func(t *testing.T) {
		require.False(t, rule.Applies(&charm.Charm{}))
	})

	t.Run("valid document passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": fullCharmcraft})
		require.True(t, rule.Applies(c))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("invalid name is reported", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": "name: Not A Slug\ntype: charm\n",
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.NotEmpty(t, result.Evidence)
	})

	t.Run("missing type is reported", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": "name: demo-charm\n",
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
	})
}

func TestRelationsOptionalRule(t *testing.T) {
	rule := &RelationsOptionalRule{}

	t.Run("not applicable without relations", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		require.False(t, rule.Applies(c))
	})

	t.Run("explicit optional on every endpoint passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": minimalCharmcraft + `
requires:
  database:
    interface: postgresql_client
    optional: false
provides:
  metrics:
    interface: prometheus_scrape
    optional: true
`,
		})
		require.True(t, rule.Applies(c))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("missing optional keys are listed by section", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": minimalCharmcraft + `
requires:
  database:
    interface: postgresql_client
provides:
  metrics:
    interface: prometheus_scrape
    optional: true
`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "requires.database")
		require.NotContains(t, result.Message, "provides.metrics")
	})
}
