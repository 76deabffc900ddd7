package encounter

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/combat"
)

// StartEncounterInput defines the request for starting a fight. An empty
// EnemyType picks an enemy matching the character's level.
type StartEncounterInput struct {
	CharacterID string
	EnemyType   string
}

// StartEncounterOutput defines the response for starting a fight
type StartEncounterOutput struct {
	EncounterID string
	Character   *entities.Character
	Enemy       *entities.Enemy
}

// TakeActionInput defines the request for playing one turn
type TakeActionInput struct {
	EncounterID string
	Action      string
}

// TakeActionOutput defines the response for one turn. Reward and
// LevelsGained are only set on the turn that ends the fight.
type TakeActionOutput struct {
	Result       *combat.TurnResult
	Character    *entities.Character
	Enemy        *entities.Enemy
	Ended        bool
	Reward       combat.Reward
	LevelsGained int
}

// GetEncounterInput defines the request for looking at a fight
type GetEncounterInput struct {
	EncounterID string
}

// GetEncounterOutput defines the response for looking at a fight
type GetEncounterOutput struct {
	EncounterID string
	Character   *entities.Character
	Enemy       *entities.Enemy
	State       combat.State
	Turn        int
}

// GetBattleHistoryInput defines the request for a character's finished fights
type GetBattleHistoryInput struct {
	CharacterID string
	Limit       int
}

// GetBattleHistoryOutput lists finished fights, newest first
type GetBattleHistoryOutput struct {
	Records []*battlelog.Record
}
