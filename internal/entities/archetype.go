package entities

import (
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Archetype is the fixed character class. It decides base stats and the
// special ability used in combat.
type Archetype string

// Available archetypes
const (
	ArchetypeWarrior Archetype = "warrior"
	ArchetypeMage    Archetype = "mage"
	ArchetypeRogue   Archetype = "rogue"
	ArchetypeCleric  Archetype = "cleric"
)

// BaseStats are the starting attributes of an archetype
type BaseStats struct {
	MaxHealth int
	Strength  int
	Magic     int
}

var baseStats = map[Archetype]BaseStats{
	ArchetypeWarrior: {MaxHealth: 120, Strength: 15, Magic: 5},
	ArchetypeMage:    {MaxHealth: 80, Strength: 8, Magic: 20},
	ArchetypeRogue:   {MaxHealth: 90, Strength: 12, Magic: 10},
	ArchetypeCleric:  {MaxHealth: 100, Strength: 10, Magic: 15},
}

// Archetypes returns every archetype in display order
func Archetypes() []Archetype {
	return []Archetype{ArchetypeWarrior, ArchetypeMage, ArchetypeRogue, ArchetypeCleric}
}

// ParseArchetype converts user input into an archetype, ignoring case
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", errors.InvalidArgumentf("unknown archetype %q", s)
	}
	return a, nil
}

// IsValid reports whether the archetype is one of the closed set
func (a Archetype) IsValid() bool {
	_, ok := baseStats[a]
	return ok
}

// BaseStats returns the starting attributes for the archetype
func (a Archetype) BaseStats() BaseStats {
	return baseStats[a]
}

// String returns the display name
func (a Archetype) String() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
