// Package progression implements experience, levelling and the simple
// bounded mutators for gold and health.
package progression

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Per-level growth applied on every level-up
const (
	XPPerLevel      = 100
	MaxHealthGrowth = 10
	StrengthGrowth  = 2
	MagicGrowth     = 2
)

// Result describes what GainExperience changed
type Result struct {
	LevelsGained int
	NewLevel     int
}

// LeveledUp reports whether at least one level was gained
func (r Result) LeveledUp() bool {
	return r.LevelsGained > 0
}

// ThresholdFor is the experience needed to leave the given level
func ThresholdFor(level int) int {
	return level * XPPerLevel
}

// GainExperience adds experience and applies every level-up it pays for.
// Each step compares against the level reached by the previous step.
func GainExperience(c *entities.Character, amount int) (Result, error) {
	if c.IsDead() {
		return Result{NewLevel: c.Level}, errors.NewReasonf(errors.ReasonCharacterDead,
			"%s cannot gain experience while dead", c.Name)
	}
	if amount < 0 {
		return Result{NewLevel: c.Level}, errors.InvalidArgumentf("experience amount %d is negative", amount)
	}

	c.Experience += amount

	var res Result
	for c.Experience >= ThresholdFor(c.Level) {
		c.Experience -= ThresholdFor(c.Level)
		levelUp(c)
		res.LevelsGained++
	}
	res.NewLevel = c.Level

	return res, nil
}

func levelUp(c *entities.Character) {
	c.Level++
	c.MaxHealth += MaxHealthGrowth
	c.Strength += StrengthGrowth
	c.Magic += MagicGrowth
	c.Health = c.MaxHealth
}

// AddGold adds a signed amount of gold. A result below zero fails and leaves
// gold unchanged.
func AddGold(c *entities.Character, amount int) error {
	if c.Gold+amount < 0 {
		return errors.NewReasonf(errors.ReasonNegativeGold,
			"cannot spend %d gold with %d available", -amount, c.Gold).
			WithMeta("gold", c.Gold).
			WithMeta("amount", amount)
	}
	c.Gold += amount
	return nil
}

// Heal restores up to amount health and returns what was actually healed
func Heal(c *entities.Character, amount int) int {
	return c.RestoreHealth(amount)
}

// Revive brings a dead character back at half health. It returns false and
// does nothing when the character is alive.
func Revive(c *entities.Character) bool {
	if !c.IsDead() {
		return false
	}
	c.Health = c.MaxHealth / 2
	return true
}

// IsDead reports whether the character has no health left
func IsDead(c *entities.Character) bool {
	return c.IsDead()
}
