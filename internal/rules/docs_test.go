package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

func TestLicenseRule(t *testing.T) {
	rule := &LicenseRule{}

	t.Run("no license file fails", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "no LICENSE file")
	})

	t.Run("unrecognized license text needs manual review", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"LICENSE": "Custom proprietary license, all rights reserved.\n",
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusUnknown, result.Status)
		require.Contains(t, result.Message, "manual review")
	})

	t.Run("LICENSE.txt is also accepted", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"LICENSE.txt": "Custom license.\n",
		})
		require.Equal(t, StatusUnknown, rule.Evaluate(c).Status)
	})
}

func TestContributionGuidelinesRule(t *testing.T) {
	rule := &ContributionGuidelinesRule{}

	t.Run("not applicable without repository or local file", func(t *testing.T) {
		require.False(t, rule.Applies(&charm.Charm{}))
	})

	t.Run("local file passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"CONTRIBUTING.md": "# Contributing\n"})
		require.True(t, rule.Applies(c))
		result := rule.Evaluate(c)
		require.Equal(t, StatusPass, result.Status)
		require.Equal(t, "CONTRIBUTING.md", result.Evidence)
	})

	t.Run("resolving conventional URL passes", func(t *testing.T) {
		c := &charm.Charm{RepoURL: "https://github.com/canonical/demo-operator"}
		c.AttachProbes(okProbes("https://github.com/canonical/demo-operator/blob/main/CONTRIBUTING.md"))
		result := rule.Evaluate(c)
		require.Equal(t, StatusPass, result.Status)
	})

	t.Run("nothing found fails", func(t *testing.T) {
		c := &charm.Charm{RepoURL: "https://github.com/canonical/demo-operator"}
		require.Equal(t, StatusFail, rule.Evaluate(c).Status)
	})
}

func TestSecurityDocRule(t *testing.T) {
	rule := &SecurityDocRule{}

	t.Run("local file passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"SECURITY.md": "# Security\n"})
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("resolving conventional URL passes", func(t *testing.T) {
		c := &charm.Charm{RepoURL: "https://github.com/canonical/demo-operator"}
		c.AttachProbes(okProbes("https://github.com/canonical/demo-operator/blob/main/SECURITY.md"))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("unresolving URL fails", func(t *testing.T) {
		c := &charm.Charm{RepoURL: "https://github.com/canonical/demo-operator"}
		require.Equal(t, StatusFail, rule.Evaluate(c).Status)
	})
}

func TestLintWorkflowRule(t *testing.T) {
	rule := &LintWorkflowRule{}

	t.Run("no workflows fails", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "no CI workflows")
	})

	t.Run("workflow running tox lint passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			".github/workflows/ci.yaml": `name: CI
on: [push]
jobs:
  lint:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - run: tox -e lint
`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusPass, result.Status)
		require.Contains(t, result.Evidence, "ci.yaml")
	})

	t.Run("workflow without lint step fails", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			".github/workflows/ci.yaml": `name: CI
on: [push]
jobs:
  unit:
    runs-on: ubuntu-latest
    steps:
      - run: pytest tests/unit
`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
	})

	t.Run("case differences are tolerated", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			".github/workflows/ci.yaml": `jobs:
  lint:
    steps:
      - run: Make Lint
`,
		})
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})
}

func TestIconRule(t *testing.T) {
	rule := &IconRule{}

	t.Run("no icon fails", func(t *testing.T) {
		c := loadCharm(t, nil)
		require.Equal(t, StatusFail, rule.Evaluate(c).Status)
	})

	t.Run("100x100 canvas passes", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"icon.svg": `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"></svg>`,
		})
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("viewBox is honored when width and height are absent", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"icon.svg": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"></svg>`,
		})
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("wrong canvas size fails", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"icon.svg": `<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256"></svg>`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "100x100")
	})

	t.Run("unparsable icon is unknown", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"icon.svg": "not an svg"})
		require.Equal(t, StatusUnknown, rule.Evaluate(c).Status)
	})
}

func TestManualRulesAlwaysNeedReview(t *testing.T) {
	for _, rule := range ManualRules() {
		t.Run(rule.ID(), func(t *testing.T) {
			c := &charm.Charm{}
			require.True(t, rule.Applies(c))
			result := rule.Evaluate(c)
			require.Equal(t, StatusUnknown, result.Status)
			require.Equal(t, "requires manual review", result.Message)
		})
	}
}
