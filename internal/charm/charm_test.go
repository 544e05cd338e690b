package charm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonical/charmhub-listing-review/internal/links"
)

func writeCheckout(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadFullCheckout(t *testing.T) {
	dir := writeCheckout(t, map[string]string{
		"charmcraft.yaml": `name: demo-charm
type: charm
title: Demo Charm
summary: A demonstration charm.
description: A charm used for demonstrations.
links:
  documentation: https://example.com/docs
  issues: https://example.com/issues
  source: https://github.com/canonical/demo-charm-operator
  contact: https://example.com/contact
requires:
  database:
    interface: postgresql_client
    optional: false
`,
		"pyproject.toml": "[project]\nname = \"demo\"\nrequires-python = \">=3.10\"\n",
		"poetry.lock":    "# lock\n",
		"LICENSE":        "Apache License\n",
		"icon.svg":       `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"></svg>`,
		".github/workflows/ci.yaml": `jobs:
  lint:
    steps:
      - run: tox -e lint
`,
	})

	c, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "demo-charm", c.Name)
	require.Equal(t, "https://github.com/canonical/demo-charm-operator", c.RepoURL)
	require.Empty(t, c.MetadataErr)
	require.NotNil(t, c.Metadata)
	require.Equal(t, "Demo Charm", c.Metadata.Title)
	require.NotNil(t, c.Metadata.Requires["database"].Optional)
	require.False(t, *c.Metadata.Requires["database"].Optional)
	require.NotNil(t, c.MetadataRaw)

	require.NotNil(t, c.PyProject)
	require.Equal(t, ">=3.10", c.PyProject.RequiresPython())
	require.NotNil(t, c.Icon)
	require.True(t, c.Icon.Is100x100())

	require.True(t, c.HasFile("poetry.lock"))
	require.False(t, c.HasFile("uv.lock"))
	require.Equal(t, []byte("Apache License\n"), c.LicenseContent())

	require.Len(t, c.Workflows, 1)
	require.Contains(t, c.Workflows[0].RunCommands(), "tox -e lint")
}

func TestLoadListValuedLinks(t *testing.T) {
	dir := writeCheckout(t, map[string]string{
		"charmcraft.yaml": `name: demo-charm
type: charm
links:
  documentation: https://example.com/docs
  issues:
    - https://example.com/issues
    - https://example.com/bugs
  source:
    - https://github.com/canonical/demo-charm-operator
    - https://github.com/canonical/demo-charm-libs
`,
	})

	c, err := Load(dir)
	require.NoError(t, err)

	require.Empty(t, c.MetadataErr)
	require.NotNil(t, c.Metadata)
	require.Equal(t, []string{"https://example.com/issues", "https://example.com/bugs"}, c.Metadata.Links.Issues)
	require.Equal(t, "https://github.com/canonical/demo-charm-operator", c.RepoURL)

	urls := c.ReferencedURLs()
	require.Contains(t, urls, "https://example.com/bugs")
	require.Contains(t, urls, "https://github.com/canonical/demo-charm-libs")
}

func TestLoadEmptyCheckout(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Empty(t, c.Name)
	require.Nil(t, c.Metadata)
	require.Nil(t, c.PyProject)
	require.Nil(t, c.Icon)
	require.Empty(t, c.Workflows)
	require.Nil(t, c.LicenseContent())
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadRecordsParseFaults(t *testing.T) {
	dir := writeCheckout(t, map[string]string{
		"charmcraft.yaml": ":\nnot yaml: [",
		"pyproject.toml":  "[broken",
		"icon.svg":        "not an svg",
	})

	c, err := Load(dir)
	require.NoError(t, err)

	require.Nil(t, c.Metadata)
	require.NotEmpty(t, c.MetadataErr)
	require.Nil(t, c.PyProject)
	require.NotEmpty(t, c.PyProjectErr)
	require.Nil(t, c.Icon)
	require.NotEmpty(t, c.IconErr)
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/canonical/demo-operator", "demo-operator"},
		{"https://github.com/canonical/demo-operator/", "demo-operator"},
		{"https://github.com/canonical/demo-operator.git", "demo-operator"},
		{"", ""},
	}
	for _, tt := range tests {
		c := &Charm{RepoURL: tt.url}
		require.Equal(t, tt.want, c.RepoName(), "url %q", tt.url)
	}
}

func TestReferencedURLs(t *testing.T) {
	c := &Charm{
		RepoURL: "https://github.com/canonical/demo-operator",
		Metadata: &Metadata{
			Links: Links{
				Documentation: "https://example.com/docs",
				Issues:        []string{"https://example.com/issues"},
				Source:        []string{"https://github.com/canonical/demo-operator"},
			},
		},
	}
	urls := c.ReferencedURLs()
	require.Contains(t, urls, "https://example.com/docs")
	require.Contains(t, urls, "https://example.com/issues")
	require.Contains(t, urls, "https://github.com/canonical/demo-operator/blob/main/CONTRIBUTING.md")
	require.Contains(t, urls, "https://github.com/canonical/demo-operator/blob/main/SECURITY.md")
	require.NotContains(t, urls, "")
}

func TestProbeOK(t *testing.T) {
	c := &Charm{}
	require.False(t, c.ProbeOK("https://example.com"))

	c.AttachProbes(map[string]links.Outcome{
		"https://example.com":     {URL: "https://example.com", OK: true, StatusCode: 200},
		"https://example.com/404": {URL: "https://example.com/404", OK: false, StatusCode: 404},
	})
	require.True(t, c.ProbeOK("https://example.com"))
	require.False(t, c.ProbeOK("https://example.com/404"))
	require.False(t, c.ProbeOK("https://never-probed.example.com"))
}
