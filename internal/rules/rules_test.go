package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canonical/charmhub-listing-review/internal/charm"
	"github.com/canonical/charmhub-listing-review/internal/links"
)

// loadCharm writes the given files into a temp checkout and loads it.
func loadCharm(t *testing.T, files map[string]string) *charm.Charm {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	c, err := charm.Load(dir)
	require.NoError(t, err)
	return c
}

// okProbes marks every given URL as resolving.
func okProbes(urls ...string) map[string]links.Outcome {
	probes := make(map[string]links.Outcome, len(urls))
	for _, u := range urls {
		probes[u] = links.Outcome{URL: u, OK: true, StatusCode: 200}
	}
	return probes
}

const minimalCharmcraft = `name: demo-charm
type: charm
title: Demo Charm
summary: A demonstration charm.
description: |
  A charm used for demonstrations.
`

func TestStatusValues(t *testing.T) {
	require.Equal(t, Status("pass"), StatusPass)
	require.Equal(t, Status("fail"), StatusFail)
	require.Equal(t, Status("unknown"), StatusUnknown)
	require.Equal(t, Status("not-applicable"), StatusNotApplicable)
}
