// Package inventory implements the bounded item multiset carried by a
// character, along with shop purchases and consumable use.
package inventory

import (
	"slices"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Capacity is the number of units a character can carry
const Capacity = 20

// Add puts one unit of an item into the inventory
func Add(c *entities.Character, itemID string) error {
	if SpaceRemaining(c) <= 0 {
		return errors.NewReasonf(errors.ReasonInventoryFull,
			"cannot add %s: inventory is full", itemID).
			WithMeta("capacity", Capacity)
	}
	c.Inventory = append(c.Inventory, itemID)
	return nil
}

// Remove takes one unit of an item out of the inventory
func Remove(c *entities.Character, itemID string) error {
	i := slices.Index(c.Inventory, itemID)
	if i < 0 {
		return errors.NewReasonf(errors.ReasonItemNotFound,
			"%s is not in the inventory", itemID)
	}
	c.Inventory = slices.Delete(c.Inventory, i, i+1)
	return nil
}

// Count returns how many units of an item are held
func Count(c *entities.Character, itemID string) int {
	n := 0
	for _, id := range c.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// Has reports whether at least one unit is held
func Has(c *entities.Character, itemID string) bool {
	return slices.Contains(c.Inventory, itemID)
}

// Size returns the number of units held
func Size(c *entities.Character) int {
	return len(c.Inventory)
}

// SpaceRemaining returns the number of free units
func SpaceRemaining(c *entities.Character) int {
	return max(Capacity-len(c.Inventory), 0)
}

// Clear empties the inventory and returns what was removed
func Clear(c *entities.Character) []string {
	removed := c.Inventory
	c.Inventory = []string{}
	if removed == nil {
		removed = []string{}
	}
	return removed
}

// Counts groups the inventory by item ID
func Counts(c *entities.Character) map[string]int {
	counts := make(map[string]int, len(c.Inventory))
	for _, id := range c.Inventory {
		counts[id]++
	}
	return counts
}

// Purchase buys one unit of an item. Nothing changes unless both the gold
// and the capacity checks pass.
func Purchase(c *entities.Character, def *entities.ItemDefinition) error {
	if c.Gold < def.Cost {
		return errors.NewReasonf(errors.ReasonInsufficientResources,
			"%s costs %d gold, %d available", def.Name, def.Cost, c.Gold).
			WithMeta("cost", def.Cost).
			WithMeta("gold", c.Gold)
	}
	if err := Add(c, def.ID); err != nil {
		return err
	}
	c.Gold -= def.Cost
	return nil
}

// Sell removes one unit of an item and credits half its cost, rounded down.
// It returns the gold received.
func Sell(c *entities.Character, def *entities.ItemDefinition) (int, error) {
	if err := Remove(c, def.ID); err != nil {
		return 0, err
	}
	price := def.SellPrice()
	c.Gold += price
	return price, nil
}

// UseResult describes the effect of a consumed item
type UseResult struct {
	ItemID string
	Effect entities.StatDelta
	// Applied is the change actually observed on the stat, which can be
	// less than the effect when health is capped
	Applied int
}

// Use consumes one unit of a consumable and applies its effect
func Use(c *entities.Character, itemID string, def *entities.ItemDefinition) (*UseResult, error) {
	if !Has(c, itemID) {
		return nil, errors.NewReasonf(errors.ReasonItemNotFound,
			"%s is not in the inventory", itemID)
	}
	if def.Type != entities.ItemTypeConsumable {
		return nil, errors.NewReasonf(errors.ReasonWrongItemType,
			"%s is a %s and cannot be used", def.Name, def.Type)
	}

	before, err := c.StatValue(def.Effect.Stat)
	if err != nil {
		return nil, err
	}
	if err := c.AddStat(def.Effect); err != nil {
		return nil, err
	}
	after, _ := c.StatValue(def.Effect.Stat)

	// presence was checked above
	_ = Remove(c, itemID)

	return &UseResult{
		ItemID:  itemID,
		Effect:  def.Effect,
		Applied: after - before,
	}, nil
}
