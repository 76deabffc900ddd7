package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/encounter"
)

var (
	fightEnemy   string
	fightActions []string
)

var fightCmd = &cobra.Command{
	Use:   "fight [character-id]",
	Short: "Fight an enemy turn by turn",
	Long: `Fight an enemy. Each turn choose 1/attack, 2/special or 3/escape.
Actions are read from --actions first, then from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return runFight(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout(), args[0], fightEnemy, fightActions)
		})
	},
}

func init() {
	fightCmd.Flags().StringVar(&fightEnemy, "enemy", "", "goblin, orc or dragon; defaults to one matching the character's level")
	fightCmd.Flags().StringSliceVar(&fightActions, "actions", nil, "scripted actions, e.g. attack,attack,special")
}

// runFight plays a whole encounter. Scripted actions are used first, then
// one action per input line. Running out of input leaves the encounter in
// progress.
func runFight(ctx context.Context, a *app, in io.Reader, w io.Writer, characterID, enemy string, actions []string) error {
	started, err := a.encounters.StartEncounter(ctx, &encounter.StartEncounterInput{
		CharacterID: characterID,
		EnemyType:   enemy,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%d hp) faces a %s (%d hp)\n",
		started.Character.Name, started.Character.Health, started.Enemy.Name, started.Enemy.Health)

	scanner := bufio.NewScanner(in)
	next := func() (string, bool) {
		if len(actions) > 0 {
			action := actions[0]
			actions = actions[1:]
			return action, true
		}
		fmt.Fprint(w, "[1] attack [2] special [3] escape > ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		action, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read action")
			}
			fmt.Fprintln(w, "No more actions, leaving the fight unfinished")
			return nil
		}

		out, err := a.encounters.TakeAction(ctx, &encounter.TakeActionInput{
			EncounterID: started.EncounterID,
			Action:      action,
		})
		if err != nil {
			return err
		}

		for _, line := range out.Result.Log {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "  [%s %d/%d hp | %s %d/%d hp]\n",
			out.Character.Name, out.Character.Health, out.Character.MaxHealth,
			out.Enemy.Name, out.Enemy.Health, out.Enemy.MaxHealth)

		if out.Ended {
			fmt.Fprintf(w, "Battle over: %s\n", out.Result.State)
			if out.Reward.XP > 0 || out.Reward.Gold > 0 {
				fmt.Fprintf(w, "Gained %d xp and %d gold\n", out.Reward.XP, out.Reward.Gold)
			}
			if out.LevelsGained > 0 {
				fmt.Fprintf(w, "Level up! Now level %d\n", out.Character.Level)
			}
			return nil
		}
	}
}
