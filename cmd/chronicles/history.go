package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/encounter"
)

var (
	historyLimit   int
	historyVerbose bool
)

var historyCmd = &cobra.Command{
	Use:   "history [character-id]",
	Short: "Show a character's recent fights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return runHistory(ctx, a, cmd.OutOrStdout(), args[0], historyLimit, historyVerbose)
		})
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 5, "number of fights to show, 0 for all kept")
	historyCmd.Flags().BoolVarP(&historyVerbose, "verbose", "v", false, "print each fight's turn log")
}

func runHistory(ctx context.Context, a *app, w io.Writer, characterID string, limit int, verbose bool) error {
	out, err := a.encounters.GetBattleHistory(ctx, &encounter.GetBattleHistoryInput{
		CharacterID: characterID,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No fights recorded")
		return nil
	}
	for _, r := range out.Records {
		fmt.Fprintf(w, "%s  %-11s vs %-7s %2d turns  %d xp  %d gold\n",
			r.EndedAt.Format("2006-01-02 15:04"), r.Outcome, r.Enemy, r.Turns, r.XP, r.Gold)
		if verbose {
			for _, line := range r.Log {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	return nil
}
