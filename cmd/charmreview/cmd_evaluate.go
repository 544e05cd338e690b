package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/canonical/charmhub-listing-review/internal/charm"
	"github.com/canonical/charmhub-listing-review/internal/engine"
	"github.com/canonical/charmhub-listing-review/internal/links"
	"github.com/canonical/charmhub-listing-review/internal/projectconfig"
	"github.com/canonical/charmhub-listing-review/internal/report"
	"github.com/canonical/charmhub-listing-review/internal/rules"
)

func newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <checkout-path>...",
		Short: "Evaluate charm checkouts against the listing criteria",
		Long: `Evaluate one or more charm checkouts against the Charmhub listing criteria.

Each argument is a local checkout of a charm repository. The command loads
the checkout's artifacts (charmcraft.yaml, pyproject.toml, CI workflows,
icon, license and documentation files), probes the URLs the metadata
references, and reports every criterion as passed, failed, needing manual
review, or not applicable.

Examples:
  charmreview evaluate .                       # current directory
  charmreview evaluate ~/src/my-charm          # a specific checkout
  charmreview evaluate charms/* --format json  # several checkouts at once`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runEvaluate,
		SilenceErrors: true,
	}
	cmd.Flags().String("format", "", "Output format: text | markdown | json | junit")
	cmd.Flags().String("repo-url", "", "Repository URL (overrides charmcraft.yaml links.source)")
	cmd.Flags().String("name", "", "Charm name (overrides charmcraft.yaml)")
	cmd.Flags().Bool("offline", false, "Skip URL probing; probe-dependent criteria report as failed")
	cmd.Flags().Int("workers", 0, "Number of rules evaluated concurrently (0 = sequential)")
	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	repoURL, _ := cmd.Flags().GetString("repo-url")
	nameOverride, _ := cmd.Flags().GetString("name")
	offline, _ := cmd.Flags().GetBool("offline")

	cfg, err := projectconfig.Load(args[0])
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Defaults.Format
	}
	switch format {
	case "text", "markdown", "json", "junit":
	default:
		return fmt.Errorf("unknown format %q (expected text, markdown, json, or junit)", format)
	}
	if !cmd.Flags().Changed("offline") && cfg.Defaults.Offline != nil {
		offline = *cfg.Defaults.Offline
	}
	workers := workerCount(cmd, cfg)

	var prober links.Prober
	if !offline {
		prober = links.NewHTTPProber(time.Duration(cfg.Probe.TimeoutSeconds) * time.Second)
		if cfg.Cache.Enabled != nil && *cfg.Cache.Enabled {
			prober = links.NewCachingProber(prober, cfg.Cache.Dir)
		}
	}

	registry, err := rules.DefaultRegistry()
	if err != nil {
		return err
	}
	eng := &engine.Engine{Workers: workers}

	var reports []*report.Report
	for _, dir := range args {
		c, err := charm.Load(dir)
		if err != nil {
			return err
		}
		if nameOverride != "" {
			c.Name = nameOverride
		}
		if repoURL != "" {
			c.RepoURL = repoURL
		}
		if prober != nil {
			urls := c.ReferencedURLs()
			slog.Debug("probing referenced URLs", "charm", c.Name, "count", len(urls))
			c.AttachProbes(links.ProbeAll(cmd.Context(), prober, urls))
		}

		r := eng.Run(registry, c)
		r.GeneratedAt = time.Now().UTC()
		reports = append(reports, r)
	}

	for i, r := range reports {
		if i > 0 && format != "json" && format != "junit" {
			fmt.Fprintln(os.Stdout)
		}
		if err := renderReport(format, r); err != nil {
			return err
		}
	}
	if format == "text" && len(reports) > 1 {
		printSummaryTable(reports)
	}

	for _, r := range reports {
		if r.Classification != report.ClassReady {
			return &NotReadyError{Message: fmt.Sprintf(
				"%s is not ready for listing (%s)", r.CharmName, r.Classification)}
		}
	}
	return nil
}

// workerCount resolves the worker count: an explicit --workers wins, even
// when it is 0, otherwise the project config default applies.
func workerCount(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) int {
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		return workers
	}
	return cfg.Defaults.Workers
}

func renderReport(format string, r *report.Report) error {
	switch format {
	case "markdown":
		return report.RenderMarkdown(os.Stdout, r)
	case "json":
		return report.RenderJSON(os.Stdout, r)
	case "junit":
		return report.RenderJUnit(os.Stdout, r)
	default:
		printTextReport(r)
		return nil
	}
}

// statusMarker is the single-character console marker for each status.
func statusMarker(s rules.Status) string {
	switch s {
	case rules.StatusPass:
		return "✓"
	case rules.StatusFail:
		return "✗"
	case rules.StatusNotApplicable:
		return "-"
	default:
		return "?"
	}
}

func printTextReport(r *report.Report) {
	fmt.Printf("Charm: %s\n\n", r.CharmName)
	for _, e := range r.WorstFirst() {
		line := fmt.Sprintf("  %s %s", statusMarker(e.Result.Status), e.Description)
		if e.Result.Status != rules.StatusPass && e.Result.Message != "" {
			line += ": " + e.Result.Message
		}
		fmt.Println(line)
	}
	passed, failed, unknownCount, notApplicable := r.Counts()
	fmt.Printf("\n%s (%d passed, %d failed, %d need manual review, %d not applicable)\n",
		r.Classification, passed, failed, unknownCount, notApplicable)
}

func printSummaryTable(reports []*report.Report) {
	nameWidth := len("Charm")
	for _, r := range reports {
		if w := runewidth.StringWidth(r.CharmName); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Printf("\n%s  %-22s  Passed  Failed\n", padRight("Charm", nameWidth), "Classification")
	for _, r := range reports {
		passed, failed, _, _ := r.Counts()
		fmt.Printf("%s  %-22s  %6d  %6d\n",
			padRight(r.CharmName, nameWidth), string(r.Classification), passed, failed)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
