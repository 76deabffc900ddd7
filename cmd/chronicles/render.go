package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/inventory"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/progression"
)

func printCharacter(w io.Writer, c *entities.Character) {
	stats := equipment.EffectiveStats(c)

	fmt.Fprintf(w, "%s the %s (%s)\n", c.Name, c.Archetype, c.ID)
	fmt.Fprintf(w, "  Level %d  XP %d/%d  Gold %d\n", c.Level, c.Experience, progression.ThresholdFor(c.Level), c.Gold)
	fmt.Fprintf(w, "  Health %d/%d%s\n", c.Health, c.MaxHealth, bonus(stats, entities.StatMaxHealth))
	fmt.Fprintf(w, "  Strength %d%s  Magic %d%s\n",
		c.Strength, bonus(stats, entities.StatStrength),
		c.Magic, bonus(stats, entities.StatMagic))
	fmt.Fprintf(w, "  Weapon: %s  Armor: %s\n", orNone(c.EquippedWeapon), orNone(c.EquippedArmor))
	fmt.Fprintf(w, "  Inventory (%d/%d): %s\n", inventory.Size(c), inventory.Capacity, formatCounts(inventory.Counts(c)))
	if c.IsDead() {
		fmt.Fprintln(w, "  ** fallen **")
	}
}

func printQuests(w io.Writer, title string, quests []*entities.QuestDefinition) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(quests) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, q := range quests {
		fmt.Fprintf(w, "  %-16s %-22s lvl %d  %d xp  %d gold\n",
			q.ID, q.Title, q.RequiredLevel, q.RewardXP, q.RewardGold)
	}
}

func bonus(stats equipment.Stats, stat entities.Stat) string {
	if b := stats.Bonuses[stat]; b != 0 {
		return fmt.Sprintf(" (%+d)", b)
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "empty"
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if counts[id] > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", id, counts[id]))
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, ", ")
}
