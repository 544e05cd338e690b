package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

func TestCharmNameRule(t *testing.T) {
	tests := []struct {
		name       string
		charmName  string
		wantStatus Status
	}{
		{name: "valid slug", charmName: "argo-server-k8s", wantStatus: StatusPass},
		{name: "single word", charmName: "postgresql", wantStatus: StatusPass},
		{name: "empty", charmName: "", wantStatus: StatusFail},
		{name: "uppercase", charmName: "MyCharm", wantStatus: StatusFail},
		{name: "underscore", charmName: "my_charm", wantStatus: StatusFail},
		{name: "double hyphen", charmName: "my--charm", wantStatus: StatusFail},
		{name: "trailing hyphen", charmName: "my-charm-", wantStatus: StatusFail},
	}
	rule := &CharmNameRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &charm.Charm{Name: tt.charmName}
			require.True(t, rule.Applies(c))
			result := rule.Evaluate(c)
			require.Equal(t, tt.wantStatus, result.Status)
			require.Equal(t, "charm-name", result.RuleID)
		})
	}
}

func TestActionNamesRule(t *testing.T) {
	rule := &ActionNamesRule{}

	t.Run("not applicable without actions", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		require.False(t, rule.Applies(c))
	})

	t.Run("valid action names pass", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": minimalCharmcraft + `
actions:
  create-backup:
    description: Back up the database.
  restore:
    description: Restore from a backup.
`,
		})
		require.True(t, rule.Applies(c))
		require.Equal(t, StatusPass, rule.Evaluate(c).Status)
	})

	t.Run("invalid names are listed sorted", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": minimalCharmcraft + `
actions:
  zz_bad:
    description: bad
  Also-Bad:
    description: bad
`,
		})
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "Also-Bad, zz_bad")
	})
}

func TestOptionNamesRule(t *testing.T) {
	rule := &OptionNamesRule{}

	t.Run("not applicable without options", func(t *testing.T) {
		c := loadCharm(t, map[string]string{"charmcraft.yaml": minimalCharmcraft})
		require.False(t, rule.Applies(c))
	})

	t.Run("flags invalid option names", func(t *testing.T) {
		c := loadCharm(t, map[string]string{
			"charmcraft.yaml": minimalCharmcraft + `
config:
  options:
    log-level:
      type: string
    maxConnections:
      type: int
`,
		})
		require.True(t, rule.Applies(c))
		result := rule.Evaluate(c)
		require.Equal(t, StatusFail, result.Status)
		require.Contains(t, result.Message, "maxConnections")
		require.NotContains(t, result.Message, "log-level")
	})
}

func TestRepositoryNameRule(t *testing.T) {
	tests := []struct {
		name       string
		charmName  string
		repoURL    string
		wantStatus Status
	}{
		{
			name:       "operator suffix",
			charmName:  "postgresql",
			repoURL:    "https://github.com/canonical/postgresql-operator",
			wantStatus: StatusPass,
		},
		{
			name:       "operators suffix for multi-charm repos",
			charmName:  "kafka",
			repoURL:    "https://github.com/canonical/kafka-operators",
			wantStatus: StatusPass,
		},
		{
			name:       "git suffix stripped",
			charmName:  "postgresql",
			repoURL:    "https://github.com/canonical/postgresql-operator.git",
			wantStatus: StatusPass,
		},
		{
			name:       "trailing slash stripped",
			charmName:  "postgresql",
			repoURL:    "https://github.com/canonical/postgresql-operator/",
			wantStatus: StatusPass,
		},
		{
			name:       "bare charm name fails",
			charmName:  "postgresql",
			repoURL:    "https://github.com/canonical/postgresql",
			wantStatus: StatusFail,
		},
		{
			name:       "unrelated name fails",
			charmName:  "postgresql",
			repoURL:    "https://github.com/canonical/database-stuff",
			wantStatus: StatusFail,
		},
	}
	rule := &RepositoryNameRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &charm.Charm{Name: tt.charmName, RepoURL: tt.repoURL}
			require.True(t, rule.Applies(c))
			require.Equal(t, tt.wantStatus, rule.Evaluate(c).Status)
		})
	}

	t.Run("not applicable without repository URL", func(t *testing.T) {
		require.False(t, rule.Applies(&charm.Charm{Name: "postgresql"}))
	})
}
