// Package combat resolves turn-based fights between one character and one
// enemy.
package combat

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// State of a battle
type State string

// Battle states
const (
	StateActive    State = "active"
	StatePlayerWon State = "player_won"
	StateEnemyWon  State = "enemy_won"
	StateEscaped   State = "escaped"
)

// IsTerminal reports whether the battle is over
func (s State) IsTerminal() bool {
	return s != StateActive
}

// Action is a player's choice for a turn
type Action string

// Player actions
const (
	ActionAttack  Action = "attack"
	ActionSpecial Action = "special"
	ActionEscape  Action = "escape"
)

// ParseAction normalises user input. Unrecognised input is returned as-is
// and consumes the turn when acted on.
func ParseAction(s string) Action {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case "1", "a":
		return ActionAttack
	case "2", "s":
		return ActionSpecial
	case "3", "e", "run":
		return ActionEscape
	default:
		return a
	}
}

// Reward is what a battle pays out. Only a won battle pays anything.
type Reward struct {
	XP   int
	Gold int
}

// TurnResult describes one full turn
type TurnResult struct {
	Turn   int
	Action Action
	// Invalid is set when the action was not recognised; the turn is lost
	Invalid bool

	DamageDealt int
	Healed      int
	Critical    bool
	Escaped     bool
	DamageTaken int

	State State
	Log   []string
}

func (r *TurnResult) logf(format string, args ...interface{}) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

// Battle is a single encounter. Only the two participants' health changes
// while it runs.
type Battle struct {
	character *entities.Character
	enemy     *entities.Enemy
	roller    dice.Roller
	state     State
	turn      int
}

// NewBattle starts an encounter. A dead character cannot fight.
func NewBattle(c *entities.Character, e *entities.Enemy, roller dice.Roller) (*Battle, error) {
	vb := errors.NewValidationBuilder()
	if c == nil {
		vb.RequiredField("character")
	}
	if e == nil {
		vb.RequiredField("enemy")
	}
	if roller == nil {
		vb.RequiredField("roller")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if c.IsDead() {
		return nil, errors.NewReasonf(errors.ReasonCharacterDead,
			"%s cannot fight while dead", c.Name)
	}

	return &Battle{
		character: c,
		enemy:     e,
		roller:    roller,
		state:     StateActive,
	}, nil
}

// State returns the current state
func (b *Battle) State() State {
	return b.state
}

// Turn returns the number of turns taken
func (b *Battle) Turn() int {
	return b.turn
}

// Character returns the fighting character
func (b *Battle) Character() *entities.Character {
	return b.character
}

// Enemy returns the opponent
func (b *Battle) Enemy() *entities.Enemy {
	return b.enemy
}

// Act plays one full turn: the player's action, then the enemy's attack if
// the battle is still going.
func (b *Battle) Act(action Action) (*TurnResult, error) {
	if b.state != StateActive {
		return nil, errors.NewReasonf(errors.ReasonCombatNotActive,
			"battle is over: %s", b.state).
			WithMeta("state", string(b.state))
	}

	b.turn++
	res := &TurnResult{Turn: b.turn, Action: action}

	switch action {
	case ActionAttack:
		dmg := Damage(b.character.Strength, b.enemy.Strength)
		b.enemy.TakeDamage(dmg)
		res.DamageDealt = dmg
		res.logf("%s attacks %s for %d damage", b.character.Name, b.enemy.Name, dmg)
	case ActionSpecial:
		ability, ok := abilities[b.character.Archetype]
		if !ok {
			b.turn--
			return nil, errors.Internalf("no special ability for archetype %q", b.character.Archetype)
		}
		if err := ability(b, res); err != nil {
			b.turn--
			return nil, err
		}
	case ActionEscape:
		roll, err := b.roller.Roll(2)
		if err != nil {
			b.turn--
			return nil, errors.Wrap(err, "escape roll failed")
		}
		if roll == 1 {
			b.state = StateEscaped
			res.Escaped = true
			res.State = b.state
			res.logf("%s escaped", b.character.Name)
			return res, nil
		}
		res.logf("%s failed to escape", b.character.Name)
	default:
		res.Invalid = true
		res.logf("%s hesitates (%q is not an action)", b.character.Name, action)
	}

	if b.checkEnd() {
		res.State = b.state
		res.logf("%s", b.outcome())
		return res, nil
	}

	dmg := Damage(b.enemy.Strength, b.character.Strength)
	b.character.TakeDamage(dmg)
	res.DamageTaken = dmg
	res.logf("%s attacks %s for %d damage", b.enemy.Name, b.character.Name, dmg)

	if b.checkEnd() {
		res.logf("%s", b.outcome())
	}
	res.State = b.state
	return res, nil
}

// Reward returns the enemy's rewards when the player won, zero otherwise.
// Rewards are never applied by the battle.
func (b *Battle) Reward() Reward {
	if b.state != StatePlayerWon {
		return Reward{}
	}
	return Reward{XP: b.enemy.XPReward, Gold: b.enemy.GoldReward}
}

func (b *Battle) checkEnd() bool {
	switch {
	case b.enemy.IsDead():
		b.state = StatePlayerWon
	case b.character.IsDead():
		b.state = StateEnemyWon
	}
	return b.state != StateActive
}

func (b *Battle) outcome() string {
	switch b.state {
	case StatePlayerWon:
		return fmt.Sprintf("%s is defeated", b.enemy.Name)
	case StateEnemyWon:
		return fmt.Sprintf("%s has fallen", b.character.Name)
	default:
		return string(b.state)
	}
}

// Damage is the basic attack formula: attacker strength minus a quarter of
// the defender's strength, at least 1
func Damage(attackerStrength, defenderStrength int) int {
	return max(attackerStrength-defenderStrength/4, 1)
}
