// Package engine runs the registered listing rules against a charm's
// artifact view and aggregates the results into a report.
package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/canonical/charmhub-listing-review/internal/charm"
	"github.com/canonical/charmhub-listing-review/internal/report"
	"github.com/canonical/charmhub-listing-review/internal/rules"
)

// Engine evaluates a rule registry against a charm. The zero value runs
// rules sequentially; set Workers above 1 to evaluate in parallel. Either
// way the report lists results in registry order, so output is identical.
type Engine struct {
	Workers int
}

// Run evaluates every registered rule and returns the aggregated report.
// It never fails: a rule that panics is downgraded to an unknown result
// carrying the fault description, and rules that do not apply are
// recorded as not-applicable without being evaluated. Running twice
// against the same charm yields an identical report.
func (e *Engine) Run(reg *rules.Registry, c *charm.Charm) *report.Report {
	ruleList := reg.Rules()
	entries := make([]report.Entry, len(ruleList))

	if e.Workers > 1 {
		e.runParallel(ruleList, c, entries)
	} else {
		for i, rule := range ruleList {
			entries[i] = evaluateOne(rule, c)
		}
	}

	return report.New(c.Name, entries)
}

// runParallel evaluates rules concurrently. Each goroutine writes only
// its own slot, so results land in registry order regardless of
// completion order. Rules are read-only over the charm view, so no
// locking is needed.
func (e *Engine) runParallel(ruleList []rules.Rule, c *charm.Charm, entries []report.Entry) {
	var g errgroup.Group
	g.SetLimit(e.Workers)
	for i, rule := range ruleList {
		g.Go(func() error {
			entries[i] = evaluateOne(rule, c)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // evaluateOne never returns an error
}

// evaluateOne runs a single rule, converting a panic into an unknown
// result so one faulty rule cannot abort the run.
func evaluateOne(rule rules.Rule, c *charm.Charm) (entry report.Entry) {
	entry.Description = rule.Description()

	defer func() {
		if r := recover(); r != nil {
			entry.Result = rules.Result{
				RuleID:  rule.ID(),
				Status:  rules.StatusUnknown,
				Message: fmt.Sprintf("rule failed to evaluate: %v", r),
			}
		}
	}()

	if !rule.Applies(c) {
		entry.Result = rules.Result{RuleID: rule.ID(), Status: rules.StatusNotApplicable}
		return entry
	}
	entry.Result = rule.Evaluate(c)
	return entry
}
