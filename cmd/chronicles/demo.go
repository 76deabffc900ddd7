package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	charorch "github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/quest"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
)

var demoArchetype string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a short scripted session and print every event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return runDemo(ctx, a, cmd.OutOrStdout(), demoArchetype)
		})
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoArchetype, "archetype", "warrior", "archetype of the demo character")
}

var demoEvents = []string{
	gameevents.CharacterCreated, gameevents.CharacterLeveledUp,
	gameevents.ItemPurchased, gameevents.ItemEquipped, gameevents.ItemUsed,
	gameevents.QuestAccepted, gameevents.QuestCompleted,
	gameevents.EncounterStarted, gameevents.EncounterEnded,
}

// runDemo creates a character, gears it up, takes the first available quest,
// fights and turns the quest in
func runDemo(ctx context.Context, a *app, w io.Writer, archetype string) error {
	for _, t := range demoEvents {
		a.bus.SubscribeFunc(t, 0, func(_ context.Context, e events.Event) error {
			fmt.Fprintf(w, "    event %s\n", e.Type())
			return nil
		})
	}

	created, err := a.characters.CreateCharacter(ctx, &charorch.CreateCharacterInput{
		Name:      "Demo",
		Archetype: archetype,
	})
	if err != nil {
		return err
	}
	id := created.Character.ID
	printCharacter(w, created.Character)

	if weapon := cheapestWeapon(a, created.Character.Gold); weapon != "" {
		if _, err := a.characters.PurchaseItem(ctx, &charorch.PurchaseItemInput{CharacterID: id, ItemID: weapon}); err != nil {
			return err
		}
		if _, err := a.characters.EquipItem(ctx, &charorch.EquipItemInput{CharacterID: id, ItemID: weapon}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Bought and equipped %s\n", weapon)
	}

	log, err := a.quests.GetQuestLog(ctx, &quest.GetQuestLogInput{CharacterID: id})
	if err != nil {
		return err
	}
	var questID string
	if len(log.Available) > 0 {
		questID = log.Available[0].ID
		if _, err := a.quests.AcceptQuest(ctx, &quest.AcceptQuestInput{CharacterID: id, QuestID: questID}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Accepted %s\n", log.Available[0].Title)
	}

	actions := strings.Split(strings.Repeat("attack,special,", 50), ",")
	if err := runFight(ctx, a, strings.NewReader(""), w, id, "", actions[:len(actions)-1]); err != nil {
		return err
	}

	after, err := a.characters.GetCharacter(ctx, &charorch.GetCharacterInput{CharacterID: id})
	if err != nil {
		return err
	}
	if questID != "" && after.Character.IsDead() {
		fmt.Fprintf(w, "%s fell, %s stays active\n", after.Character.Name, questID)
		questID = ""
	}

	if questID != "" {
		done, err := a.quests.CompleteQuest(ctx, &quest.CompleteQuestInput{CharacterID: id, QuestID: questID})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Completed %s: +%d xp, +%d gold\n", questID, done.Reward.XP, done.Reward.Gold)
		after.Character = done.Character
	}

	printCharacter(w, after.Character)
	return nil
}

func cheapestWeapon(a *app, gold int) string {
	best := ""
	for _, itemID := range a.catalog.ItemIDs() {
		item := a.catalog.Items[itemID]
		if item.Type != entities.ItemTypeWeapon || item.Cost > gold {
			continue
		}
		if best == "" || item.Cost < a.catalog.Items[best].Cost {
			best = itemID
		}
	}
	return best
}
