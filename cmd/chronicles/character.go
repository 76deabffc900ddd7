package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	charorch "github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/character"
)

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"char"},
	Short:   "Create and inspect characters",
}

var createCharacterCmd = &cobra.Command{
	Use:   "create [name] [warrior|mage|rogue|cleric]",
	Short: "Create a new character",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.CreateCharacter(ctx, &charorch.CreateCharacterInput{
				Name:      args[0],
				Archetype: args[1],
			})
			if err != nil {
				return err
			}
			printCharacter(cmd.OutOrStdout(), out.Character)
			return nil
		})
	},
}

var showCharacterCmd = &cobra.Command{
	Use:   "show [character-id]",
	Short: "Show a character sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.GetCharacter(ctx, &charorch.GetCharacterInput{CharacterID: args[0]})
			if err != nil {
				return err
			}
			printCharacter(cmd.OutOrStdout(), out.Character)
			return nil
		})
	},
}

var listCharactersCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored characters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.ListCharacters(ctx, &charorch.ListCharactersInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Characters) == 0 {
				fmt.Fprintln(w, "No characters")
			}
			for _, c := range out.Characters {
				fmt.Fprintf(w, "%s  %s the %s, level %d\n", c.ID, c.Name, c.Archetype, c.Level)
			}
			return nil
		})
	},
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete [character-id]",
	Short: "Delete a character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if _, err := a.characters.DeleteCharacter(ctx, &charorch.DeleteCharacterInput{CharacterID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

var reviveCharacterCmd = &cobra.Command{
	Use:   "revive [character-id]",
	Short: "Bring a fallen character back at half health",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.ReviveCharacter(ctx, &charorch.ReviveCharacterInput{CharacterID: args[0]})
			if err != nil {
				return err
			}
			if !out.Revived {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not dead\n", out.Character.Name)
				return nil
			}
			printCharacter(cmd.OutOrStdout(), out.Character)
			return nil
		})
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip [character-id] [item-id]",
	Short: "Equip a weapon or armor piece from the inventory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.EquipItem(ctx, &charorch.EquipItemInput{
				CharacterID: args[0],
				ItemID:      args[1],
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Equipped %s (%s)\n", out.Result.ItemID, out.Result.Effect)
			if out.Result.Replaced != "" {
				fmt.Fprintf(w, "%s returned to the inventory\n", out.Result.Replaced)
			}
			printCharacter(w, out.Character)
			return nil
		})
	},
}

var unequipCmd = &cobra.Command{
	Use:   "unequip [character-id] [weapon|armor]",
	Short: "Move the item in a slot back to the inventory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.UnequipItem(ctx, &charorch.UnequipItemInput{
				CharacterID: args[0],
				Slot:        args[1],
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.ItemID == "" {
				fmt.Fprintf(w, "Nothing equipped in %s\n", args[1])
				return nil
			}
			fmt.Fprintf(w, "Unequipped %s\n", out.ItemID)
			printCharacter(w, out.Character)
			return nil
		})
	},
}

func init() {
	characterCmd.AddCommand(createCharacterCmd)
	characterCmd.AddCommand(showCharacterCmd)
	characterCmd.AddCommand(listCharactersCmd)
	characterCmd.AddCommand(deleteCharacterCmd)
	characterCmd.AddCommand(reviveCharacterCmd)
}
