// Package report holds the aggregated outcome of a listing review run and
// the renderers that turn it into checklist, JSON, and JUnit output.
// Rendering is kept apart from evaluation so the engine stays free of
// presentation concerns.
package report

import (
	"time"

	"github.com/canonical/charmhub-listing-review/internal/rules"
)

// Classification is the overall readiness verdict for a charm.
type Classification string

const (
	// ClassReady means every rule passed or was not applicable.
	ClassReady Classification = "ready"
	// ClassNotReady means at least one rule failed.
	ClassNotReady Classification = "not-ready"
	// ClassNeedsManualReview means no rule failed but at least one needs
	// human judgement.
	ClassNeedsManualReview Classification = "needs-manual-review"
)

// Entry pairs a rule's checklist description with its result.
type Entry struct {
	Description string
	Result      rules.Result
}

// Report is one evaluation run's outcome: one entry per registered rule,
// in registry order, plus the derived classification.
type Report struct {
	CharmName      string
	Entries        []Entry
	Classification Classification

	// GeneratedAt is stamped by the caller before rendering; the engine
	// leaves it zero so that identical inputs produce identical reports.
	GeneratedAt time.Time
}

// New builds a report from ordered entries, deriving the classification.
func New(charmName string, entries []Entry) *Report {
	return &Report{
		CharmName:      charmName,
		Entries:        entries,
		Classification: Classify(entries),
	}
}

// Classify derives the aggregate verdict: not-ready if anything failed,
// needs-manual-review if nothing failed but something is unknown, ready
// otherwise.
func Classify(entries []Entry) Classification {
	anyUnknown := false
	for _, e := range entries {
		switch e.Result.Status {
		case rules.StatusFail:
			return ClassNotReady
		case rules.StatusUnknown:
			anyUnknown = true
		}
	}
	if anyUnknown {
		return ClassNeedsManualReview
	}
	return ClassReady
}

// Counts returns the number of entries per status.
func (r *Report) Counts() (passed, failed, unknownCount, notApplicable int) {
	for _, e := range r.Entries {
		switch e.Result.Status {
		case rules.StatusPass:
			passed++
		case rules.StatusFail:
			failed++
		case rules.StatusUnknown:
			unknownCount++
		case rules.StatusNotApplicable:
			notApplicable++
		}
	}
	return passed, failed, unknownCount, notApplicable
}
