package combat

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// MaxClericHeal caps a single cleric heal
const MaxClericHeal = 30

type ability func(b *Battle, res *TurnResult) error

// abilities holds one special per archetype. Every archetype must have an
// entry; the package tests enforce it.
var abilities = map[entities.Archetype]ability{
	entities.ArchetypeWarrior: powerStrike,
	entities.ArchetypeMage:    fireball,
	entities.ArchetypeRogue:   criticalStrike,
	entities.ArchetypeCleric:  heal,
}

// HasAbility reports whether the archetype has a special ability
func HasAbility(a entities.Archetype) bool {
	_, ok := abilities[a]
	return ok
}

func powerStrike(b *Battle, res *TurnResult) error {
	dmg := 2 * b.character.Strength
	b.enemy.TakeDamage(dmg)
	res.DamageDealt = dmg
	res.logf("Power Strike deals %d damage", dmg)
	return nil
}

func fireball(b *Battle, res *TurnResult) error {
	dmg := 2 * b.character.Magic
	b.enemy.TakeDamage(dmg)
	res.DamageDealt = dmg
	res.logf("Fireball burns %s for %d damage", b.enemy.Name, dmg)
	return nil
}

func criticalStrike(b *Battle, res *TurnResult) error {
	roll, err := b.roller.Roll(2)
	if err != nil {
		return errors.Wrap(err, "critical roll failed")
	}

	dmg := b.character.Strength
	if roll == 1 {
		dmg = 3 * b.character.Strength
		res.Critical = true
	}
	b.enemy.TakeDamage(dmg)
	res.DamageDealt = dmg
	if res.Critical {
		res.logf("Critical hit! %d damage", dmg)
	} else {
		res.logf("Strike deals %d damage", dmg)
	}
	return nil
}

func heal(b *Battle, res *TurnResult) error {
	healed := b.character.RestoreHealth(MaxClericHeal)
	res.Healed = healed
	res.logf("%s heals for %d", b.character.Name, healed)
	return nil
}
