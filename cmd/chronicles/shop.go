package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	charorch "github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/character"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Buy, sell and use items",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items for sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app) error {
			w := cmd.OutOrStdout()
			for _, id := range a.catalog.ItemIDs() {
				item := a.catalog.Items[id]
				fmt.Fprintf(w, "%-16s %-16s %-10s %-14s %4d gold  %s\n",
					item.ID, item.Name, item.Type, item.Effect, item.Cost, item.Description)
			}
			return nil
		})
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy [character-id] [item-id]",
	Short: "Buy one item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.PurchaseItem(ctx, &charorch.PurchaseItemInput{
				CharacterID: args[0],
				ItemID:      args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %s for %d gold, %d left\n", args[1], out.Cost, out.Character.Gold)
			return nil
		})
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell [character-id] [item-id]",
	Short: "Sell one item for half its cost",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.SellItem(ctx, &charorch.SellItemInput{
				CharacterID: args[0],
				ItemID:      args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sold %s for %d gold, %d total\n", args[1], out.Earned, out.Character.Gold)
			return nil
		})
	},
}

var useCmd = &cobra.Command{
	Use:   "use [character-id] [item-id]",
	Short: "Use a consumable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out, err := a.characters.UseItem(ctx, &charorch.UseItemInput{
				CharacterID: args[0],
				ItemID:      args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Used %s: %s %+d\n", args[1], out.Result.Effect.Stat, out.Result.Applied)
			return nil
		})
	},
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(buyCmd)
	shopCmd.AddCommand(sellCmd)
	shopCmd.AddCommand(useCmd)
}
