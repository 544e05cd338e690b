package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charmreview",
		Short: "charmreview - review charms for public listing on Charmhub",
		Long: `charmreview evaluates a charm against the Charmhub listing criteria.

It checks a local checkout of the charm repository, reports which listing
requirements pass, fail, or need a human reviewer, and can keep the review
issue's checklist comment up to date.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newIssueCommand())
	cmd.AddCommand(newRulesCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
