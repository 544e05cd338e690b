package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

// toolingFiles are checked in order; the first one present is inspected.
var toolingFiles = []string{"Makefile", "Justfile", "tox.ini"}

// toolingCommands are the Charmcraft profile commands a charm repository
// is expected to expose.
var toolingCommands = []string{"format", "unit", "integration"}

// ToolingRule checks that the repository provides the Charmcraft profile
// commands through a Makefile, Justfile, or tox.ini. Target presence is
// checked textually; the review does not execute repository commands.
type ToolingRule struct{}

var _ Rule = (*ToolingRule)(nil)

func (*ToolingRule) ID() string { return "charmcraft-tooling" }

func (*ToolingRule) Description() string {
	return "All charms should provide the commands configured by the Charmcraft profile " +
		"(format, unit, integration), to allow easy testing across the charm ecosystem."
}

func (*ToolingRule) Applies(c *charm.Charm) bool { return true }

func (r *ToolingRule) Evaluate(c *charm.Charm) Result {
	var file string
	for _, f := range toolingFiles {
		if c.HasFile(f) {
			file = f
			break
		}
	}
	if file == "" {
		return fail(r.ID(), "no Makefile, Justfile, or tox.ini found")
	}

	content := strings.ToLower(string(c.FileContent(file)))
	found := make(map[string]bool, len(toolingCommands))
	for _, cmd := range toolingCommands {
		switch file {
		case "tox.ini":
			found[cmd] = strings.Contains(content, "[testenv:"+cmd+"]")
		default:
			found[cmd] = strings.Contains(content, cmd+":") || strings.Contains(content, cmd+" (")
		}
	}

	var missing []string
	for cmd, ok := range found {
		if !ok {
			missing = append(missing, cmd)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  fmt.Sprintf("%s is missing command(s): %s", file, strings.Join(missing, ", ")),
			Evidence: file,
		}
	}
	return Result{RuleID: r.ID(), Status: StatusPass, Evidence: file}
}

// StrictDependenciesRule checks that parts using the charm plugin set
// charm-strict-dependencies. The rule only applies when charmcraft.yaml
// declares parts; a charm built with the default profile has none, and
// whether strict dependencies matter there is a reviewer call.
type StrictDependenciesRule struct{}

var _ Rule = (*StrictDependenciesRule)(nil)

func (*StrictDependenciesRule) ID() string { return "strict-dependencies" }

func (*StrictDependenciesRule) Description() string {
	return "When using the `charm` plugin with charmcraft, ensure that you set strict " +
		"dependencies to true."
}

func (*StrictDependenciesRule) Applies(c *charm.Charm) bool {
	return c.Metadata != nil && len(c.Metadata.Parts) > 0
}

func (r *StrictDependenciesRule) Evaluate(c *charm.Charm) Result {
	var lax []string
	for name, part := range c.Metadata.Parts {
		if part.Plugin != "charm" {
			continue
		}
		if part.StrictDependencies == nil || !*part.StrictDependencies {
			lax = append(lax, name)
		}
	}
	if len(lax) == 0 {
		return pass(r.ID(), "")
	}
	sort.Strings(lax)
	return Result{
		RuleID:   r.ID(),
		Status:   StatusFail,
		Message:  fmt.Sprintf("charm plugin part(s) without charm-strict-dependencies: %s", strings.Join(lax, ", ")),
		Evidence: "charmcraft.yaml: parts",
	}
}

// RequiresPythonRule checks that pyproject.toml declares the supported
// Python version, either in the project table or the poetry table.
type RequiresPythonRule struct{}

var _ Rule = (*RequiresPythonRule)(nil)

func (*RequiresPythonRule) ID() string { return "requires-python" }

func (*RequiresPythonRule) Description() string {
	return "Set the `requires-python` version in your `pyproject.toml` so that tooling will " +
		"detect any use of Python features not available in the versions you support."
}

func (*RequiresPythonRule) Applies(c *charm.Charm) bool { return true }

func (r *RequiresPythonRule) Evaluate(c *charm.Charm) Result {
	if !c.HasFile("pyproject.toml") {
		return fail(r.ID(), "pyproject.toml not found")
	}
	if c.PyProject == nil {
		return unknown(r.ID(), "could not parse pyproject.toml: "+c.PyProjectErr)
	}
	if c.PyProject.RequiresPython() == "" {
		return fail(r.ID(), "pyproject.toml does not declare a Python version requirement")
	}
	return pass(r.ID(), "")
}

// LockFileRule checks that a dependency lock file accompanies
// pyproject.toml, so exact charm builds can be reproduced.
type LockFileRule struct{}

var _ Rule = (*LockFileRule)(nil)

func (*LockFileRule) ID() string { return "lock-file" }

func (*LockFileRule) Description() string {
	return "Ensure that the `pyproject.toml` *and* the lock file are committed to version " +
		"control, so that exact versions of charms can be reproduced."
}

func (*LockFileRule) Applies(c *charm.Charm) bool { return true }

func (r *LockFileRule) Evaluate(c *charm.Charm) Result {
	if !c.HasFile("pyproject.toml") {
		return fail(r.ID(), "pyproject.toml not found")
	}
	if c.HasFile("poetry.lock") || c.HasFile("uv.lock") {
		return pass(r.ID(), "")
	}
	return fail(r.ID(), "no poetry.lock or uv.lock committed alongside pyproject.toml")
}
