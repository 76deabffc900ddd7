// Package equipment manages the weapon and armor slots of a character.
//
// Every equipped slot keeps the exact item definition whose stat delta was
// applied, so unequipping reverses the same delta even if the catalogue has
// since changed. An occupied slot without its stored definition is treated
// as corrupt data rather than as an item with no effect.
package equipment

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/inventory"
)

// EquipResult describes a successful equip
type EquipResult struct {
	Slot   entities.Slot
	ItemID string
	Effect entities.StatDelta
	// Replaced is the item returned to the inventory, if the slot was occupied
	Replaced string
}

// SlotFor returns the slot an item type occupies
func SlotFor(t entities.ItemType) (entities.Slot, bool) {
	switch t {
	case entities.ItemTypeWeapon:
		return entities.SlotWeapon, true
	case entities.ItemTypeArmor:
		return entities.SlotArmor, true
	default:
		return "", false
	}
}

// Equip moves an owned weapon or armor piece into its slot. An item already
// in the slot has its delta reversed and goes back to the inventory before
// the new delta is applied.
func Equip(c *entities.Character, itemID string, def *entities.ItemDefinition) (*EquipResult, error) {
	if !inventory.Has(c, itemID) {
		return nil, errors.NewReasonf(errors.ReasonItemNotOwned,
			"%s is not in the inventory", itemID)
	}
	if def == nil || def.ID != itemID {
		return nil, errors.NewReasonf(errors.ReasonWrongItemType,
			"definition does not describe %s", itemID)
	}

	slot, ok := SlotFor(def.Type)
	if !ok {
		return nil, errors.NewReasonf(errors.ReasonWrongItemType,
			"%s is a %s and cannot be equipped", def.Name, def.Type).
			WithMeta("item_type", string(def.Type))
	}
	if err := checkGearEffect(def); err != nil {
		return nil, err
	}

	var previous *entities.ItemDefinition
	if c.Occupant(slot) != "" {
		var err error
		previous, err = appliedDefinition(c, slot)
		if err != nil {
			return nil, err
		}
	}

	// the new item leaves first, so the displaced one always fits
	if err := inventory.Remove(c, itemID); err != nil {
		return nil, err
	}

	res := &EquipResult{Slot: slot, ItemID: itemID, Effect: def.Effect}

	if previous != nil {
		if err := c.SubtractStat(previous.Effect); err != nil {
			return nil, err
		}
		c.Inventory = append(c.Inventory, previous.ID)
		c.SetOccupant(slot, nil)
		res.Replaced = previous.ID
	}

	if err := c.AddStat(def.Effect); err != nil {
		return nil, err
	}
	applied := *def
	c.SetOccupant(slot, &applied)

	return res, nil
}

// Unequip returns the item in a slot to the inventory and reverses its
// delta. An empty slot is a no-op returning "". A full inventory fails
// without changing anything.
func Unequip(c *entities.Character, slot entities.Slot) (string, error) {
	if !slot.IsValid() {
		return "", errors.InvalidArgumentf("unknown slot %q", slot)
	}

	itemID := c.Occupant(slot)
	if itemID == "" {
		return "", nil
	}

	def, err := appliedDefinition(c, slot)
	if err != nil {
		return "", err
	}

	if inventory.SpaceRemaining(c) <= 0 {
		return "", errors.NewReasonf(errors.ReasonInventoryFull,
			"cannot unequip %s: inventory is full", itemID).
			WithMeta("slot", string(slot))
	}

	if err := c.SubtractStat(def.Effect); err != nil {
		return "", err
	}
	c.Inventory = append(c.Inventory, itemID)
	c.SetOccupant(slot, nil)

	return itemID, nil
}

// Stats is a read-only view of a character's current attributes together
// with how much of each comes from equipped gear
type Stats struct {
	Health    int
	MaxHealth int
	Strength  int
	Magic     int
	// Bonuses sums the applied deltas per stat
	Bonuses map[entities.Stat]int
}

// Base returns the value of a stat without equipment
func (s Stats) Base(stat entities.Stat) int {
	switch stat {
	case entities.StatMaxHealth:
		return s.MaxHealth - s.Bonuses[stat]
	case entities.StatStrength:
		return s.Strength - s.Bonuses[stat]
	case entities.StatMagic:
		return s.Magic - s.Bonuses[stat]
	default:
		return s.Health
	}
}

// EffectiveStats reports current stats and the equipment contribution. It
// does not modify the character.
func EffectiveStats(c *entities.Character) Stats {
	stats := Stats{
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Strength:  c.Strength,
		Magic:     c.Magic,
		Bonuses:   make(map[entities.Stat]int),
	}
	for _, slot := range entities.Slots() {
		if def := c.Equipped[slot]; def != nil && c.Occupant(slot) == def.ID {
			stats.Bonuses[def.Effect.Stat] += def.Effect.Value
		}
	}
	return stats
}

// Equipped returns the definitions currently applied, keyed by slot
func Equipped(c *entities.Character) map[entities.Slot]*entities.ItemDefinition {
	out := make(map[entities.Slot]*entities.ItemDefinition)
	for _, slot := range entities.Slots() {
		if def := c.Equipped[slot]; def != nil && c.Occupant(slot) != "" {
			out[slot] = def
		}
	}
	return out
}

func appliedDefinition(c *entities.Character, slot entities.Slot) (*entities.ItemDefinition, error) {
	itemID := c.Occupant(slot)
	def := c.Equipped[slot]
	if def == nil || def.ID != itemID {
		return nil, errors.DataLossf("no applied definition recorded for %s in %s slot", itemID, slot).
			WithMeta("slot", string(slot)).
			WithMeta("item_id", itemID)
	}
	return def, nil
}

func checkGearEffect(def *entities.ItemDefinition) error {
	if def.Effect.Value < 0 {
		return errors.InvalidArgumentf("%s has negative effect %s", def.ID, def.Effect).
			WithMeta("item_id", def.ID)
	}
	switch def.Effect.Stat {
	case entities.StatStrength, entities.StatMagic, entities.StatMaxHealth:
		return nil
	default:
		return errors.InvalidArgumentf("%s has effect %s which gear cannot apply", def.ID, def.Effect)
	}
}
