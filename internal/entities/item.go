package entities

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// ItemType classifies an item definition
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
)

// IsValid reports whether the item type is known
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable:
		return true
	default:
		return false
	}
}

// Equippable reports whether items of this type occupy a slot
func (t ItemType) Equippable() bool {
	return t == ItemTypeWeapon || t == ItemTypeArmor
}

// Slot is an equipment slot on a character
type Slot string

// Equipment slots
const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// Slots returns every equipment slot
func Slots() []Slot {
	return []Slot{SlotWeapon, SlotArmor}
}

// IsValid reports whether the slot exists
func (s Slot) IsValid() bool {
	return s == SlotWeapon || s == SlotArmor
}

// ItemDefinition is immutable reference data for an item
type ItemDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        ItemType  `json:"type"`
	Effect      StatDelta `json:"effect"`
	Cost        int       `json:"cost"`
	Description string    `json:"description,omitempty"`
}

// Validate checks the definition is usable by the rules
func (d *ItemDefinition) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", d.ID, vb)
	errors.ValidateRequired("name", d.Name, vb)
	if !d.Type.IsValid() {
		vb.InvalidField("type", string(d.Type))
	}
	if !d.Effect.Stat.IsValid() {
		vb.InvalidField("effect", string(d.Effect.Stat))
	}
	// current health is not a gear stat; equip/unequip would not be reversible
	if d.Type.Equippable() && d.Effect.Stat == StatHealth {
		vb.Field("effect", "equipment cannot modify current health")
	}
	// a negative gear delta can clamp health or push a stat below zero,
	// neither of which unequip can undo
	if d.Type.Equippable() && d.Effect.Value < 0 {
		vb.Field("effect", "equipment cannot have a negative effect")
	}
	errors.ValidateMin("cost", d.Cost, 0, vb)

	return vb.Build()
}

// SellPrice is what a merchant pays for one unit
func (d *ItemDefinition) SellPrice() int {
	return d.Cost / 2
}
