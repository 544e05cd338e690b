package charm

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workflow is a CI workflow definition parsed as loose YAML. ParseErr is
// set when the file could not be parsed; the file still appears in the
// view so rules can report on its presence.
type Workflow struct {
	Path     string // repository-relative path
	Raw      map[string]any
	ParseErr string
}

// loadWorkflows reads every YAML file under .github/workflows/, sorted by
// path for stable iteration.
func loadWorkflows(root string) []Workflow {
	dir := filepath.Join(root, ".github", "workflows")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var workflows []Workflow
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(".github", "workflows", e.Name()))
		wf := Workflow{Path: rel}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			wf.ParseErr = err.Error()
		} else if err := yaml.Unmarshal(data, &wf.Raw); err != nil {
			wf.ParseErr = err.Error()
		}
		workflows = append(workflows, wf)
	}
	sort.Slice(workflows, func(i, j int) bool { return workflows[i].Path < workflows[j].Path })
	return workflows
}

// RunCommands returns every "run" step command in the workflow, lowercased.
func (w *Workflow) RunCommands() []string {
	jobs, ok := w.Raw["jobs"].(map[string]any)
	if !ok {
		return nil
	}
	var cmds []string
	jobNames := make([]string, 0, len(jobs))
	for name := range jobs {
		jobNames = append(jobNames, name)
	}
	sort.Strings(jobNames)
	for _, name := range jobNames {
		job, ok := jobs[name].(map[string]any)
		if !ok {
			continue
		}
		steps, ok := job["steps"].([]any)
		if !ok {
			continue
		}
		for _, s := range steps {
			step, ok := s.(map[string]any)
			if !ok {
				continue
			}
			if run, ok := step["run"].(string); ok {
				cmds = append(cmds, strings.ToLower(run))
			}
		}
	}
	return cmds
}
