package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in quest and item files into the data directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		written, err := catalog.WriteDefaults(cfg.DataDir)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(written) == 0 {
			fmt.Fprintf(w, "%s already holds the data files\n", cfg.DataDir)
		}
		for _, path := range written {
			fmt.Fprintf(w, "Wrote %s\n", path)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and check the quest and item files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := catalog.Load(cfg.QuestPath(), cfg.ItemPath())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d quests and %d items are valid\n", len(c.Quests), len(c.Items))
		return nil
	},
}
