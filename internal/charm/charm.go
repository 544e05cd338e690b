// Package charm loads a checked-out charm repository into a read-only
// artifact view. All filesystem access happens in Load; rule evaluation
// only reads the resulting Charm value.
package charm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/links"
)

// trackedFiles are the repository-relative paths preloaded into the view.
// Rules check presence and content through HasFile/FileContent, so the set
// of files the checklist can reason about is explicit here.
var trackedFiles = []string{
	"charmcraft.yaml",
	"pyproject.toml",
	"poetry.lock",
	"uv.lock",
	"icon.svg",
	"LICENSE",
	"LICENSE.txt",
	"CONTRIBUTING.md",
	"SECURITY.md",
	"Makefile",
	"Justfile",
	"tox.ini",
}

// Charm is the artifact view rules evaluate against.
type Charm struct {
	// Name is the charm name, from charmcraft.yaml when available.
	Name string
	// Root is the absolute path of the checkout.
	Root string
	// RepoURL is the URL of the source repository, when known. Used by the
	// repository naming rule; empty means the rule is not applicable.
	RepoURL string

	// Metadata is the typed charmcraft.yaml content, nil when the file is
	// absent or unparsable. MetadataErr carries the parse fault, if any.
	Metadata    *Metadata
	MetadataRaw map[string]any
	MetadataErr string

	// PyProject is the parsed pyproject.toml, nil when absent or unparsable.
	PyProject    *PyProject
	PyProjectErr string

	// Icon holds parsed icon.svg dimensions, nil when icon.svg is absent.
	Icon    *Icon
	IconErr string

	// Workflows are the parsed CI workflow definitions.
	Workflows []Workflow

	// Probes holds pre-fetched URL probe outcomes keyed by URL. Attached
	// before evaluation; rules that depend on a URL resolving look it up
	// here rather than performing network access.
	Probes map[string]links.Outcome

	files map[string][]byte
}

// Load builds the artifact view for the repository checked out at dir.
// Missing or malformed artifacts are recorded on the view, not returned
// as errors: absence is data the rules interpret. The only error case is
// dir itself not being a readable directory.
func Load(dir string) (*Charm, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading checkout: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	c := &Charm{
		Root:  root,
		files: make(map[string][]byte),
	}

	for _, rel := range trackedFiles {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		c.files[rel] = data
	}

	if raw, ok := c.files["charmcraft.yaml"]; ok {
		md, rawMap, mdErr := parseMetadata(raw)
		c.Metadata = md
		c.MetadataRaw = rawMap
		if mdErr != nil {
			c.MetadataErr = mdErr.Error()
		}
		if md != nil {
			c.Name = md.Name
			if len(md.Links.Source) > 0 {
				c.RepoURL = md.Links.Source[0]
			}
		}
	}

	if raw, ok := c.files["pyproject.toml"]; ok {
		pp, ppErr := parsePyProject(raw)
		c.PyProject = pp
		if ppErr != nil {
			c.PyProjectErr = ppErr.Error()
		}
	}

	if raw, ok := c.files["icon.svg"]; ok {
		icon, iconErr := parseIcon(raw)
		c.Icon = icon
		if iconErr != nil {
			c.IconErr = iconErr.Error()
		}
	}

	c.Workflows = loadWorkflows(root)

	return c, nil
}

// HasFile reports whether the tracked repository-relative path exists.
func (c *Charm) HasFile(rel string) bool {
	_, ok := c.files[rel]
	return ok
}

// FileContent returns the content of a tracked file, or nil when absent.
func (c *Charm) FileContent(rel string) []byte {
	return c.files[rel]
}

// AttachProbes records URL probe outcomes on the view. Call before
// evaluation; the view is treated as immutable once rules start running.
func (c *Charm) AttachProbes(outcomes map[string]links.Outcome) {
	c.Probes = outcomes
}

// ProbeOK reports whether url was probed and resolved with a 2xx status.
func (c *Charm) ProbeOK(url string) bool {
	out, ok := c.Probes[url]
	return ok && out.OK
}

// RepoName returns the final path element of RepoURL with any .git suffix
// stripped, or "" when the URL is unknown.
func (c *Charm) RepoName() string {
	if c.RepoURL == "" {
		return ""
	}
	name := strings.TrimSuffix(c.RepoURL, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

// LicenseContent returns the LICENSE file content under either conventional
// name, or nil when the repository has no license file.
func (c *Charm) LicenseContent() []byte {
	if data, ok := c.files["LICENSE"]; ok {
		return data
	}
	return c.files["LICENSE.txt"]
}

// ReferencedURLs collects every URL the checklist may need probed:
// charmcraft.yaml links plus the conventional documentation files derived
// from the repository URL.
func (c *Charm) ReferencedURLs() []string {
	var urls []string
	if c.Metadata != nil {
		urls = append(urls, c.Metadata.Links.Documentation)
		urls = append(urls, c.Metadata.Links.Issues...)
		urls = append(urls, c.Metadata.Links.Source...)
		urls = append(urls, c.Metadata.Links.Contact)
	}
	urls = append(urls,
		c.ContributionURL(),
		c.SecurityURL(),
	)
	var nonEmpty []string
	for _, u := range urls {
		if u != "" {
			nonEmpty = append(nonEmpty, u)
		}
	}
	return nonEmpty
}

// ContributionURL is the conventional location of the contribution guide on
// the hosting platform, derived from the repository URL.
func (c *Charm) ContributionURL() string {
	return c.conventionalDocURL("CONTRIBUTING.md")
}

// SecurityURL is the conventional location of the security policy.
func (c *Charm) SecurityURL() string {
	return c.conventionalDocURL("SECURITY.md")
}

func (c *Charm) conventionalDocURL(name string) string {
	if c.RepoURL == "" {
		return ""
	}
	base := strings.TrimSuffix(strings.TrimSuffix(c.RepoURL, "/"), ".git")
	return base + "/blob/main/" + name
}
