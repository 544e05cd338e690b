package rules

import "github.com/canonical/charmhub-listing-review/internal/charm"

// IconRule checks that the charm ships an icon.svg with a 100x100 canvas.
type IconRule struct{}

var _ Rule = (*IconRule)(nil)

func (*IconRule) ID() string { return "icon" }

func (*IconRule) Description() string {
	return "The charm has an icon."
}

func (*IconRule) Applies(c *charm.Charm) bool { return true }

func (r *IconRule) Evaluate(c *charm.Charm) Result {
	if !c.HasFile("icon.svg") {
		return fail(r.ID(), "no icon.svg found")
	}
	if c.Icon == nil {
		return unknown(r.ID(), "could not parse icon.svg: "+c.IconErr)
	}
	if !c.Icon.Is100x100() {
		return Result{
			RuleID:   r.ID(),
			Status:   StatusFail,
			Message:  "icon.svg canvas is not 100x100 pixels",
			Evidence: "icon.svg",
		}
	}
	return pass(r.ID(), "")
}
