// Package entities provides the core records of the rules engine and the
// primitive mutations every rule is built from.
package entities

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Starting values shared by every archetype
const (
	StartingLevel = 1
	StartingGold  = 100
)

// Character is a player character. Name and Archetype never change after
// creation; everything else is mutated by the rules packages.
type Character struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Archetype  Archetype `json:"archetype"`
	Level      int       `json:"level"`
	Health     int       `json:"health"`
	MaxHealth  int       `json:"max_health"`
	Strength   int       `json:"strength"`
	Magic      int       `json:"magic"`
	Experience int       `json:"experience"`
	Gold       int       `json:"gold"`

	// Inventory is a multiset of item IDs, one entry per unit
	Inventory []string `json:"inventory"`

	EquippedWeapon string `json:"equipped_weapon,omitempty"`
	EquippedArmor  string `json:"equipped_armor,omitempty"`
	// Equipped keeps the exact definition whose delta is applied for each slot
	Equipped map[Slot]*ItemDefinition `json:"equipped,omitempty"`

	ActiveQuests    []string `json:"active_quests"`
	CompletedQuests []string `json:"completed_quests"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewCharacter creates a level 1 character with the archetype's base stats
func NewCharacter(name string, archetype Archetype) (*Character, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, 64, vb)
	if !archetype.IsValid() {
		vb.InvalidField("archetype", string(archetype))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	base := archetype.BaseStats()
	return &Character{
		Name:            strings.TrimSpace(name),
		Archetype:       archetype,
		Level:           StartingLevel,
		Health:          base.MaxHealth,
		MaxHealth:       base.MaxHealth,
		Strength:        base.Strength,
		Magic:           base.Magic,
		Gold:            StartingGold,
		Inventory:       []string{},
		Equipped:        make(map[Slot]*ItemDefinition),
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
	}, nil
}

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type used on the event bus
func (c *Character) GetType() string {
	return "character"
}

// IsDead reports whether health has reached zero
func (c *Character) IsDead() bool {
	return c.Health <= 0
}

// TakeDamage lowers health by n, never below zero, and returns the new health
func (c *Character) TakeDamage(n int) int {
	c.Health = applyDamage(c.Health, n)
	return c.Health
}

// RestoreHealth raises health by n up to max and returns the amount healed
func (c *Character) RestoreHealth(n int) int {
	if n <= 0 || c.Health >= c.MaxHealth {
		return 0
	}
	healed := min(n, c.MaxHealth-c.Health)
	c.Health += healed
	return healed
}

// AddStat applies a delta. Strength, magic and max health change by exactly
// the delta value so SubtractStat is an exact inverse. Health stays within
// [0, max health].
func (c *Character) AddStat(d StatDelta) error {
	switch d.Stat {
	case StatHealth:
		c.Health = clamp(c.Health+d.Value, 0, c.MaxHealth)
	case StatMaxHealth:
		c.MaxHealth += d.Value
		c.Health = clamp(c.Health, 0, max(c.MaxHealth, 0))
	case StatStrength:
		c.Strength += d.Value
	case StatMagic:
		c.Magic += d.Value
	default:
		return errors.InvalidArgumentf("unknown stat %q", d.Stat)
	}
	return nil
}

// SubtractStat reverses a delta previously applied with AddStat
func (c *Character) SubtractStat(d StatDelta) error {
	return c.AddStat(d.Inverse())
}

// StatValue reads a stat by name
func (c *Character) StatValue(s Stat) (int, error) {
	switch s {
	case StatHealth:
		return c.Health, nil
	case StatMaxHealth:
		return c.MaxHealth, nil
	case StatStrength:
		return c.Strength, nil
	case StatMagic:
		return c.Magic, nil
	default:
		return 0, errors.InvalidArgumentf("unknown stat %q", s)
	}
}

// Occupant returns the item ID equipped in a slot, or "" when empty
func (c *Character) Occupant(slot Slot) string {
	switch slot {
	case SlotWeapon:
		return c.EquippedWeapon
	case SlotArmor:
		return c.EquippedArmor
	default:
		return ""
	}
}

// SetOccupant records the item in a slot along with the definition whose
// delta was applied. A nil definition clears the slot.
func (c *Character) SetOccupant(slot Slot, def *ItemDefinition) {
	if c.Equipped == nil {
		c.Equipped = make(map[Slot]*ItemDefinition)
	}

	id := ""
	if def != nil {
		id = def.ID
		c.Equipped[slot] = def
	} else {
		delete(c.Equipped, slot)
	}

	switch slot {
	case SlotWeapon:
		c.EquippedWeapon = id
	case SlotArmor:
		c.EquippedArmor = id
	}
}

// IsQuestActive reports whether the quest is in the active set
func (c *Character) IsQuestActive(id string) bool {
	return slices.Contains(c.ActiveQuests, id)
}

// IsQuestCompleted reports whether the quest is in the completed set
func (c *Character) IsQuestCompleted(id string) bool {
	return slices.Contains(c.CompletedQuests, id)
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Inventory = slices.Clone(c.Inventory)
	out.ActiveQuests = slices.Clone(c.ActiveQuests)
	out.CompletedQuests = slices.Clone(c.CompletedQuests)
	if c.Equipped != nil {
		out.Equipped = make(map[Slot]*ItemDefinition, len(c.Equipped))
		for slot, def := range c.Equipped {
			if def == nil {
				continue
			}
			d := *def
			out.Equipped[slot] = &d
		}
	}
	return &out
}

func applyDamage(health, n int) int {
	if n < 0 {
		n = 0
	}
	return max(health-n, 0)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
