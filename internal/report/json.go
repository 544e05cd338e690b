package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/canonical/charmhub-listing-review/internal/rules"
)

// JSON output shapes. Field names are part of the CI-facing contract.

type jsonReport struct {
	Charm          string      `json:"charm"`
	Classification string      `json:"classification"`
	GeneratedAt    string      `json:"generatedAt,omitempty"`
	Results        []jsonEntry `json:"results"`
}

type jsonEntry struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Evidence    string `json:"evidence,omitempty"`
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, r *Report) error {
	jr := jsonReport{
		Charm:          r.CharmName,
		Classification: string(r.Classification),
		Results:        make([]jsonEntry, 0, len(r.Entries)),
	}
	if !r.GeneratedAt.IsZero() {
		jr.GeneratedAt = r.GeneratedAt.UTC().Format(time.RFC3339Nano)
	}
	for _, e := range r.Entries {
		jr.Results = append(jr.Results, jsonEntry{
			Rule:        e.Result.RuleID,
			Description: e.Description,
			Status:      string(e.Result.Status),
			Message:     e.Result.Message,
			Evidence:    e.Result.Evidence,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jr); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// statusRank orders statuses for display purposes; unused ranks keep the
// mapping total.
var statusRank = map[rules.Status]int{
	rules.StatusFail:          0,
	rules.StatusUnknown:       1,
	rules.StatusPass:          2,
	rules.StatusNotApplicable: 3,
}

// WorstFirst returns the entries sorted fail, unknown, pass,
// not-applicable, preserving registry order within each group. The
// Report itself stays in registry order; this is a display helper.
func (r *Report) WorstFirst() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for rank := 0; rank <= 3; rank++ {
		for _, e := range r.Entries {
			if statusRank[e.Result.Status] == rank {
				out = append(out, e)
			}
		}
	}
	return out
}
