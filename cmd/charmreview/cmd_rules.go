package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/charmhub-listing-review/internal/rules"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the listing criteria in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := rules.DefaultRegistry()
			if err != nil {
				return err
			}
			for _, rule := range registry.Rules() {
				fmt.Printf("%-28s %s\n", rule.ID(), rule.Description())
			}
			return nil
		},
	}
}
