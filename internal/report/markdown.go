package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/rules"
)

// RenderMarkdown writes the report as the checklist posted to the review
// issue: one `* [x]` / `* [ ]` line per rule plus a summary line.
// Unknown and not-applicable entries render unchecked with an annotation,
// so the reviewer can tell them from plain failures.
func RenderMarkdown(w io.Writer, r *Report) error {
	for _, e := range r.Entries {
		if _, err := io.WriteString(w, ChecklistLine(e)+"\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nOverall: %s\n", summaryLine(r))
	return err
}

// ChecklistLine renders one entry as a markdown checklist line.
func ChecklistLine(e Entry) string {
	box := "* [ ] "
	if e.Result.Status == rules.StatusPass {
		box = "* [x] "
	}
	line := box + e.Description
	switch e.Result.Status {
	case rules.StatusUnknown:
		line += " *(requires manual review)*"
	case rules.StatusNotApplicable:
		line += " *(not applicable)*"
	case rules.StatusFail:
		if e.Result.Message != "" {
			line += " — " + e.Result.Message
		}
	}
	return line
}

func summaryLine(r *Report) string {
	passed, failed, unknownCount, notApplicable := r.Counts()
	parts := []string{fmt.Sprintf("%d passed", passed)}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if unknownCount > 0 {
		parts = append(parts, fmt.Sprintf("%d need manual review", unknownCount))
	}
	if notApplicable > 0 {
		parts = append(parts, fmt.Sprintf("%d not applicable", notApplicable))
	}
	return fmt.Sprintf("**%s** (%s)", r.Classification, strings.Join(parts, ", "))
}
