package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/quest"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Accept, complete and review quests",
}

var questLogCmd = &cobra.Command{
	Use:   "log [character-id]",
	Short: "Show available, active and completed quests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.quests.GetQuestLog(ctx, &quest.GetQuestLogInput{CharacterID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printQuests(w, "Available", out.Available)
			printQuests(w, "Active", out.Active)
			printQuests(w, "Completed", out.Completed)
			fmt.Fprintf(w, "%.0f%% complete, earned %d xp and %d gold from quests\n",
				out.CompletionPercentage, out.Totals.XP, out.Totals.Gold)
			return nil
		})
	},
}

var acceptQuestCmd = &cobra.Command{
	Use:   "accept [character-id] [quest-id]",
	Short: "Accept a quest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.quests.AcceptQuest(ctx, &quest.AcceptQuestInput{CharacterID: args[0], QuestID: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Accepted %s: %s\n", out.Quest.Title, out.Quest.Description)
			return nil
		})
	},
}

var completeQuestCmd = &cobra.Command{
	Use:   "complete [character-id] [quest-id]",
	Short: "Complete an active quest and collect the reward",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.quests.CompleteQuest(ctx, &quest.CompleteQuestInput{CharacterID: args[0], QuestID: args[1]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Completed %s: +%d xp, +%d gold\n", args[1], out.Reward.XP, out.Reward.Gold)
			if out.Reward.LevelsGained > 0 {
				fmt.Fprintf(w, "Level up! Now level %d\n", out.Character.Level)
			}
			return nil
		})
	},
}

var abandonQuestCmd = &cobra.Command{
	Use:   "abandon [character-id] [quest-id]",
	Short: "Drop an active quest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if _, err := a.quests.AbandonQuest(ctx, &quest.AbandonQuestInput{CharacterID: args[0], QuestID: args[1]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Abandoned %s\n", args[1])
			return nil
		})
	},
}

var questChainCmd = &cobra.Command{
	Use:   "chain [quest-id]",
	Short: "Show the prerequisites leading to a quest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.quests.GetQuestChain(ctx, &quest.GetQuestChainInput{QuestID: args[0]})
			if err != nil {
				return err
			}
			titles := make([]string, 0, len(out.Chain))
			for _, q := range out.Chain {
				titles = append(titles, q.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(titles, " -> "))
			return nil
		})
	},
}

func init() {
	questCmd.AddCommand(questLogCmd)
	questCmd.AddCommand(acceptQuestCmd)
	questCmd.AddCommand(completeQuestCmd)
	questCmd.AddCommand(abandonQuestCmd)
	questCmd.AddCommand(questChainCmd)
}
