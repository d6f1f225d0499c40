package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the automagic command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "automagic",
		Short: "Simulate and profile randomized life-counter games.",
		Long: `automagic drives games in which participants start at maximum life ` +
			`and random spells change it every turn until everyone reaches zero. ` +
			`It profiles how many turns and how long each variant takes.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to configuration file (empty = defaults and environment)")

	root.AddCommand(
		newProfileCmd(),
		newRunCmd(),
		newVariantsCmd(),
		newHistoryCmd(),
	)
	return root
}
