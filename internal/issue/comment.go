package issue

import (
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/report"
	"github.com/canonical/charmhub-listing-review/internal/rules"
)

const commentIntro = "Thank you for submitting your charm for listing on " +
	"[Charmhub](https://charmhub.io)! A reviewer will work through the " +
	"checklist below with you. Automated items are refreshed on every run; " +
	"the rest are ticked off by your reviewer."

// Comment holds the inputs for the review comment.
type Comment struct {
	Report        *report.Report
	DocsURL       string
	BestPractices []string
}

// Render produces the full review comment body.
func (c Comment) Render() string {
	var b strings.Builder
	b.WriteString(commentIntro)
	b.WriteString("\n\n## Listing requirements\n\n")
	for _, entry := range c.Report.Entries {
		b.WriteString(report.ChecklistLine(entry))
		b.WriteString("\n")
	}

	b.WriteString("\n## Documentation\n\n")
	if c.DocsURL != "" {
		b.WriteString("* [ ] Documentation reviewed: " + c.DocsURL + "\n")
	} else {
		b.WriteString("* [ ] Documentation link provided\n")
	}

	if len(c.BestPractices) > 0 {
		b.WriteString("\n## Best practices\n\n")
		for _, p := range c.BestPractices {
			b.WriteString("* [ ] " + p + "\n")
		}
	}

	b.WriteString("\n## Additional checks\n\n")
	b.WriteString("* [ ] Charm has been demonstrated to the reviewer\n")
	b.WriteString("* [ ] Listing page reviewed by the reviewer\n")
	return b.String()
}

// Merge folds the automated results into an existing comment. Only
// checklist lines backed by a pass or fail result are replaced; manual
// criteria, best-practice items, and everything else a reviewer may have
// ticked by hand are kept exactly as they are. Criteria that came back
// unknown are also left alone, so a reviewer's judgement on them is never
// unticked by a refresh.
func (c Comment) Merge(existing string) string {
	freshState := map[string]string{}
	for _, entry := range c.Report.Entries {
		switch entry.Result.Status {
		case rules.StatusPass, rules.StatusFail:
		default:
			continue
		}
		line := report.ChecklistLine(entry)
		if key, ok := checklistKey(line); ok {
			freshState[key] = line
		}
	}

	lines := strings.Split(existing, "\n")
	for i, line := range lines {
		key, ok := checklistKey(line)
		if !ok {
			continue
		}
		if updated, found := freshState[key]; found {
			lines[i] = updated
		}
	}
	return strings.Join(lines, "\n")
}

// checklistKey returns the text of a checklist line with the checkbox
// state stripped, so checked and unchecked forms of the same item
// compare equal.
func checklistKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"* [ ] ", "* [x] ", "* [X] "} {
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			return checklistText(rest), true
		}
	}
	return "", false
}

// checklistText normalizes a checklist item down to its description,
// dropping any status annotation the renderer appended.
func checklistText(s string) string {
	for _, sep := range []string{" — ", " *("} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
