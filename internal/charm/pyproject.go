package charm

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// PyProject is the subset of pyproject.toml the checklist inspects.
type PyProject struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// RequiresPython returns the declared Python version requirement, checking
// the standard project table first and then the poetry dependency table.
func (p *PyProject) RequiresPython() string {
	if p.Project.RequiresPython != "" {
		return p.Project.RequiresPython
	}
	if v, ok := p.Tool.Poetry.Dependencies["python"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parsePyProject(raw []byte) (*PyProject, error) {
	var pp PyProject
	if err := toml.Unmarshal(raw, &pp); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	return &pp, nil
}
