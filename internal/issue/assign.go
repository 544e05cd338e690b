package issue

import (
	"context"
	"math/rand"

	"github.com/canonical/charmhub-listing-review/internal/reviewers"
)

// AssignReviewer assigns a reviewer picked from the roster, unless the
// issue already has an assignee. It returns the assigned login, or ""
// when the issue was left untouched.
func AssignReviewer(ctx context.Context, c Client, number int, roster *reviewers.Roster, rng *rand.Rand) (string, error) {
	assigned, err := c.Assignees(ctx, number)
	if err != nil {
		return "", err
	}
	if len(assigned) > 0 {
		return "", nil
	}
	reviewer := roster.Pick(rng)
	if err := c.Assign(ctx, number, reviewer); err != nil {
		return "", err
	}
	return reviewer, nil
}
