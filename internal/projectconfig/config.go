// Package projectconfig provides the ProjectConfig struct and loader for
// .charmreview.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultReviewersFile = "reviewers.yaml"

	DefaultFormat  = "text"
	DefaultWorkers = 4

	DefaultProbeTimeout = 5

	DefaultCacheDir = ".charmreview-cache"

	DefaultIssueRepo = "canonical/charmhub-listing-requests"
)

// PathsConfig holds paths to the documentation checkouts and the
// reviewer roster.
type PathsConfig struct {
	OpsDocs        string `yaml:"ops_docs,omitempty"`
	CharmcraftDocs string `yaml:"charmcraft_docs,omitempty"`
	Reviewers      string `yaml:"reviewers,omitempty"`
}

// DefaultsConfig holds default evaluation parameters.
type DefaultsConfig struct {
	Format  string `yaml:"format,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
	Offline *bool  `yaml:"offline,omitempty"`
}

// ProbeConfig holds URL probe settings.
type ProbeConfig struct {
	TimeoutSeconds int `yaml:"timeout,omitempty"`
}

// CacheConfig holds probe cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// IssueConfig holds the review-issue repository settings.
type IssueConfig struct {
	Repo string `yaml:"repo,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .charmreview.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Probe    ProbeConfig    `yaml:"probe,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Issue    IssueConfig    `yaml:"issue,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Reviewers: DefaultReviewersFile,
		},
		Defaults: DefaultsConfig{
			Format:  DefaultFormat,
			Workers: DefaultWorkers,
			Offline: boolPtr(false),
		},
		Probe: ProbeConfig{
			TimeoutSeconds: DefaultProbeTimeout,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(true),
			Dir:     DefaultCacheDir,
		},
		Issue: IssueConfig{
			Repo: DefaultIssueRepo,
		},
	}
}

// Load finds .charmreview.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .charmreview.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .charmreview.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .charmreview.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".charmreview.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.OpsDocs != "" {
		dst.Paths.OpsDocs = src.Paths.OpsDocs
	}
	if src.Paths.CharmcraftDocs != "" {
		dst.Paths.CharmcraftDocs = src.Paths.CharmcraftDocs
	}
	if src.Paths.Reviewers != "" {
		dst.Paths.Reviewers = src.Paths.Reviewers
	}

	// Defaults
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.Offline != nil {
		dst.Defaults.Offline = src.Defaults.Offline
	}

	// Probe
	if src.Probe.TimeoutSeconds != 0 {
		dst.Probe.TimeoutSeconds = src.Probe.TimeoutSeconds
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Issue
	if src.Issue.Repo != "" {
		dst.Issue.Repo = src.Issue.Repo
	}
}

func boolPtr(b bool) *bool {
	return &b
}
