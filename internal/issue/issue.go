// Package issue handles the GitHub issue side of a listing review:
// parsing the request form out of an issue body, building the review
// comment, and merging fresh automated results into an existing comment
// without losing a reviewer's manual ticks.
package issue

import (
	"fmt"
	"strings"
)

// Fields is the listing request form as filled in by the submitter.
// The issue template renders each field as a `### Heading` followed by
// the value.
type Fields struct {
	CharmName        string
	Demo             string
	Repository       string
	CILinting        string
	CIRelease        string
	CIIntegration    string
	DocumentationURL string
}

// headings maps issue-template headings to field setters.
var headings = map[string]func(*Fields, string){
	"Charm name":                 func(f *Fields, v string) { f.CharmName = v },
	"Demo":                       func(f *Fields, v string) { f.Demo = v },
	"Project Repository":         func(f *Fields, v string) { f.Repository = v },
	"CI Linting":                 func(f *Fields, v string) { f.CILinting = v },
	"CI Release":                 func(f *Fields, v string) { f.CIRelease = v },
	"CI Integration Tests":       func(f *Fields, v string) { f.CIIntegration = v },
	"Documentation Link":         func(f *Fields, v string) { f.DocumentationURL = v },
	"Link to your documentation": func(f *Fields, v string) { f.DocumentationURL = v },
}

// ParseBody extracts the request form from an issue body. Values of
// "_No response_" (the GitHub form placeholder) are treated as empty.
func ParseBody(body string) (Fields, error) {
	var f Fields

	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var current func(*Fields, string)
	var value []string

	flush := func() {
		if current == nil {
			return
		}
		v := strings.TrimSpace(strings.Join(value, "\n"))
		if v == "_No response_" {
			v = ""
		}
		current(&f, v)
		current = nil
		value = nil
	}

	for _, line := range lines {
		if heading, ok := strings.CutPrefix(line, "### "); ok {
			flush()
			current = headings[strings.TrimSpace(heading)]
			continue
		}
		if current != nil {
			value = append(value, line)
		}
	}
	flush()

	if f.CharmName == "" {
		return f, fmt.Errorf("issue body does not name a charm")
	}
	return f, nil
}

// Title is the canonical review issue title for a charm.
func Title(charmName string) string {
	return fmt.Sprintf("Review `%s` for public listing on Charmhub", charmName)
}
