// Package rules defines the listing-review criteria evaluated against a
// charm's artifact view, and the registry that holds them.
package rules

import "github.com/canonical/charmhub-listing-review/internal/charm"

// Status is the outcome of evaluating a single rule.
type Status string

const (
	// StatusPass indicates the requirement is met.
	StatusPass Status = "pass"
	// StatusFail indicates the requirement is not met.
	StatusFail Status = "fail"
	// StatusUnknown indicates the determination needs human judgement, or
	// the rule could not complete its check.
	StatusUnknown Status = "unknown"
	// StatusNotApplicable indicates the rule does not apply to this charm.
	StatusNotApplicable Status = "not-applicable"
)

// Result is the immutable outcome of one rule evaluation.
type Result struct {
	// RuleID identifies the rule that produced this result.
	RuleID string
	// Status is the verdict.
	Status Status
	// Message is a human-readable explanation, empty when the verdict
	// speaks for itself.
	Message string
	// Evidence is an optional path or snippet supporting the verdict.
	Evidence string
}

// Rule is a single listing criterion. Implementations must be
// deterministic, must not write to the filesystem or network, and must
// treat absent artifacts as normal input rather than an error.
type Rule interface {
	// ID is the stable identifier, unique across the registry.
	ID() string
	// Description is the checklist line for this criterion, phrased the
	// way it appears in the review issue.
	Description() string
	// Applies reports whether the rule is meaningful for this charm.
	// When false the engine records not-applicable without evaluating.
	Applies(c *charm.Charm) bool
	// Evaluate produces the verdict for this charm.
	Evaluate(c *charm.Charm) Result
}

// pass, fail and unknown build Results with less noise at call sites.

func pass(id, message string) Result {
	return Result{RuleID: id, Status: StatusPass, Message: message}
}

func fail(id, message string) Result {
	return Result{RuleID: id, Status: StatusFail, Message: message}
}

func unknown(id, message string) Result {
	return Result{RuleID: id, Status: StatusUnknown, Message: message}
}
