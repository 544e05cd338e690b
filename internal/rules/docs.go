package rules

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/canonical/charmhub-listing-review/internal/charm"
)

// knownLicenseHashes are SHA-512 digests of the canonical texts of licenses
// accepted without reviewer judgement. Any other license file is left for
// the reviewer to assess.
var knownLicenseHashes = map[string]string{
	"fdae7ed259455ca9fa45939e7f25cbb4de29831cda16d9151de25a5f6e9d9be43b053f4fd3b896026239fca77abce04f543d591c501ecf4ce18c854bc0a51660": "Apache-2.0",
	"5ae83c5b0ac7ed6469b38ed11f33b3d1dfabc9eaee8fff6a2e3d5e23b45e5f899a2bec93865c33868e83d0c8e4bff2c0dd0ebf0c3a390903a1f4d9ac7d9ab29e": "GPL-2.0",
	"56a2f53e2df8adf4b55edf328579a74b1358f7f177b5242bd97dd79a8d26bc93f9dcc96dbdd6854627a96b73deb9ccaada6862f581ad1c8f6a2f3fe0849db005": "GPL-3.0",
	"0906b47a8ae8ec763c6e548f42582d82fd8c8fa62403cd2b00a94d547277c98e65ce9d505d476b707c10c8aacd2d8094c594ba1e12d3c67cd658981c4bd2fe83": "LGPL-3.0",
	"f5a0456e775e047c6c91571cf004a42cd04b3962ee882bc7c23d62a9a4d95bb310bfaaeb6a16bd777990eb564cc6c9ef13d7b3028f0d62ed2636ca083de6439a": "MPL-2.0",
}

// LicenseRule checks that the repository carries a license statement.
// A recognized OSS license passes outright; any other license file needs
// reviewer judgement; no license file fails.
type LicenseRule struct{}

var _ Rule = (*LicenseRule)(nil)

func (*LicenseRule) ID() string { return "license" }

func (*LicenseRule) Description() string {
	return "The charm provides a license statement."
}

func (*LicenseRule) Applies(c *charm.Charm) bool { return true }

func (r *LicenseRule) Evaluate(c *charm.Charm) Result {
	content := c.LicenseContent()
	if content == nil {
		return fail(r.ID(), "no LICENSE file found")
	}
	sum := sha512.Sum512([]byte(strings.TrimSpace(string(content))))
	if name, ok := knownLicenseHashes[hex.EncodeToString(sum[:])]; ok {
		return Result{RuleID: r.ID(), Status: StatusPass, Evidence: name}
	}
	return unknown(r.ID(), "license file present but not a recognized license text; requires manual review")
}

// ContributionGuidelinesRule checks that the contribution guide resolves
// at its conventional location. The URL is derived from the repository
// URL, so the rule needs one to apply.
type ContributionGuidelinesRule struct{}

var _ Rule = (*ContributionGuidelinesRule)(nil)

func (*ContributionGuidelinesRule) ID() string { return "contribution-guidelines" }

func (*ContributionGuidelinesRule) Description() string {
	return "The charm provides contribution guidelines."
}

func (*ContributionGuidelinesRule) Applies(c *charm.Charm) bool {
	return c.RepoURL != "" || c.HasFile("CONTRIBUTING.md")
}

func (r *ContributionGuidelinesRule) Evaluate(c *charm.Charm) Result {
	if c.HasFile("CONTRIBUTING.md") {
		return Result{RuleID: r.ID(), Status: StatusPass, Evidence: "CONTRIBUTING.md"}
	}
	if url := c.ContributionURL(); url != "" && c.ProbeOK(url) {
		return Result{RuleID: r.ID(), Status: StatusPass, Evidence: url}
	}
	return fail(r.ID(), "no contribution guidelines found in the repository or at its conventional URL")
}

// SecurityDocRule checks that the security policy exists: which versions
// are supported and how to report security issues.
type SecurityDocRule struct{}

var _ Rule = (*SecurityDocRule)(nil)

func (*SecurityDocRule) ID() string { return "security-doc" }

func (*SecurityDocRule) Description() string {
	return "The charm provides a security statement."
}

func (*SecurityDocRule) Applies(c *charm.Charm) bool {
	return c.RepoURL != "" || c.HasFile("SECURITY.md")
}

func (r *SecurityDocRule) Evaluate(c *charm.Charm) Result {
	if c.HasFile("SECURITY.md") {
		return Result{RuleID: r.ID(), Status: StatusPass, Evidence: "SECURITY.md"}
	}
	if url := c.SecurityURL(); url != "" && c.ProbeOK(url) {
		return Result{RuleID: r.ID(), Status: StatusPass, Evidence: url}
	}
	return fail(r.ID(), "no security policy found in the repository or at its conventional URL")
}

// lintKeywords are the lint invocations the CI check recognizes.
var lintKeywords = []string{"make lint", "just lint", "tox -e lint"}

// LintWorkflowRule checks that a CI workflow runs a recognized lint
// command. Workflows that only call reusable workflows are not detected;
// those still need reviewer judgement.
type LintWorkflowRule struct{}

var _ Rule = (*LintWorkflowRule)(nil)

func (*LintWorkflowRule) ID() string { return "coding-conventions" }

func (*LintWorkflowRule) Description() string {
	return "The charm implements coding conventions in CI."
}

func (*LintWorkflowRule) Applies(c *charm.Charm) bool { return true }

func (r *LintWorkflowRule) Evaluate(c *charm.Charm) Result {
	if len(c.Workflows) == 0 {
		return fail(r.ID(), "no CI workflows found under .github/workflows")
	}
	for _, wf := range c.Workflows {
		for _, cmd := range wf.RunCommands() {
			for _, kw := range lintKeywords {
				if strings.Contains(cmd, kw) {
					return Result{RuleID: r.ID(), Status: StatusPass, Evidence: wf.Path}
				}
			}
		}
	}
	return fail(r.ID(), "no workflow step runs make lint, just lint, or tox -e lint")
}
