package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/charmhub-listing-review/internal/charm"
	"github.com/canonical/charmhub-listing-review/internal/docs"
	"github.com/canonical/charmhub-listing-review/internal/engine"
	"github.com/canonical/charmhub-listing-review/internal/issue"
	"github.com/canonical/charmhub-listing-review/internal/links"
	"github.com/canonical/charmhub-listing-review/internal/projectconfig"
	"github.com/canonical/charmhub-listing-review/internal/reviewers"
	"github.com/canonical/charmhub-listing-review/internal/rules"
)

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue <issue-number>",
		Short: "Refresh the review checklist on a listing request issue",
		Long: `Refresh the review checklist comment on a Charmhub listing request issue.

Reads the request form out of the issue body, evaluates the charm checkout,
and posts (or updates in place) the checklist comment. Boxes a reviewer has
ticked by hand are preserved; only the automated items change state.

Requires the gh CLI to be installed and authenticated.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runIssue,
		SilenceErrors: true,
	}
	cmd.Flags().String("checkout", "", "Path to the charm checkout to evaluate (required)")
	cmd.Flags().String("path-to-ops", "", "Path to an ops documentation checkout for best-practice extraction")
	cmd.Flags().String("path-to-charmcraft", "", "Path to a charmcraft documentation checkout for best-practice extraction")
	cmd.Flags().Bool("assign", false, "Assign a reviewer from the roster if the issue has none")
	cmd.Flags().Bool("dry-run", false, "Print the comment instead of posting it")
	_ = cmd.MarkFlagRequired("checkout")
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	var number int
	if _, err := fmt.Sscanf(args[0], "%d", &number); err != nil {
		return fmt.Errorf("invalid issue number %q", args[0])
	}
	checkout, _ := cmd.Flags().GetString("checkout")
	opsDocs, _ := cmd.Flags().GetString("path-to-ops")
	charmcraftDocs, _ := cmd.Flags().GetString("path-to-charmcraft")
	assign, _ := cmd.Flags().GetBool("assign")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := projectconfig.Load(checkout)
	if err != nil {
		return err
	}
	if opsDocs == "" {
		opsDocs = cfg.Paths.OpsDocs
	}
	if charmcraftDocs == "" {
		charmcraftDocs = cfg.Paths.CharmcraftDocs
	}

	client := &issue.GHClient{Repo: cfg.Issue.Repo}
	body, err := client.Body(cmd.Context(), number)
	if err != nil {
		return err
	}
	fields, err := issue.ParseBody(body)
	if err != nil {
		return err
	}

	c, err := charm.Load(checkout)
	if err != nil {
		return err
	}
	if c.Name == "" {
		c.Name = fields.CharmName
	}
	if fields.Repository != "" {
		c.RepoURL = fields.Repository
	}

	prober := links.Prober(links.NewHTTPProber(time.Duration(cfg.Probe.TimeoutSeconds) * time.Second))
	if cfg.Cache.Enabled != nil && *cfg.Cache.Enabled {
		prober = links.NewCachingProber(prober, cfg.Cache.Dir)
	}
	c.AttachProbes(links.ProbeAll(cmd.Context(), prober, c.ReferencedURLs()))

	registry, err := rules.DefaultRegistry()
	if err != nil {
		return err
	}
	eng := &engine.Engine{Workers: cfg.Defaults.Workers}
	r := eng.Run(registry, c)
	r.GeneratedAt = time.Now().UTC()

	comment := issue.Comment{
		Report:        r,
		DocsURL:       fields.DocumentationURL,
		BestPractices: docs.BestPractices(opsDocs, charmcraftDocs),
	}
	rendered := comment.Render()

	if dryRun {
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	}

	if err := client.SetTitle(cmd.Context(), number, issue.Title(fields.CharmName)); err != nil {
		return err
	}

	existing, err := client.LastComment(cmd.Context(), number)
	if err != nil {
		return err
	}
	if existing != "" {
		slog.Debug("updating existing checklist comment", "issue", number)
		if err := client.EditLastComment(cmd.Context(), number, comment.Merge(existing)); err != nil {
			return err
		}
	} else {
		if err := client.Comment(cmd.Context(), number, rendered); err != nil {
			return err
		}
	}

	if assign {
		roster, err := reviewers.Load(cfg.Paths.Reviewers)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		reviewer, err := issue.AssignReviewer(cmd.Context(), client, number, roster, rng)
		if err != nil {
			return err
		}
		if reviewer != "" {
			fmt.Printf("Assigned %s as reviewer\n", reviewer)
		} else {
			slog.Debug("issue already has an assignee", "issue", number)
		}
	}
	return nil
}
