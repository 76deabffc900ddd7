// Package encounter implements the encounter orchestrator that runs fights
// turn by turn
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/combat"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/progression"
)

// Service defines the interface for encounter operations
type Service interface {
	// StartEncounter pits a living character against an enemy
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)

	// TakeAction plays the character's action and the enemy's reply. The
	// encounter is removed once it ends.
	TakeAction(ctx context.Context, input *TakeActionInput) (*TakeActionOutput, error)

	// GetEncounter returns the current state of a fight
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)

	// GetBattleHistory returns a character's recently finished fights
	GetBattleHistory(ctx context.Context, input *GetBattleHistoryInput) (*GetBattleHistoryOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	EncounterRepo encounters.Repository
	IDGenerator   idgen.Generator
	Roller        dice.Roller
	EventBus      events.EventBus
	Clock         clock.Clock
	// BattleLog records finished fights; nil keeps no history
	BattleLog     battlelog.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	encounterRepo encounters.Repository
	idGen         idgen.Generator
	roller        dice.Roller
	clock         clock.Clock
	battleLog     battlelog.Repository
	publisher     *gameevents.Publisher
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		encounterRepo: cfg.EncounterRepo,
		idGen:         cfg.IDGenerator,
		roller:        cfg.Roller,
		clock:         c,
		battleLog:     cfg.BattleLog,
		publisher:     gameevents.NewPublisher(cfg.EventBus),
	}, nil
}

func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	active, err := o.encounterRepo.ListByCharacter(ctx, &encounters.ListByCharacterInput{CharacterID: c.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list encounters")
	}
	if len(active.EncounterIDs) > 0 {
		return nil, errors.InvalidStatef("%s is already fighting in %s", c.Name, active.EncounterIDs[0]).
			WithMeta("encounter_id", active.EncounterIDs[0])
	}

	var enemy *entities.Enemy
	if input.EnemyType == "" {
		enemy, err = combat.EnemyForLevel(c.Level)
	} else {
		enemy, err = combat.NewEnemyFromTemplate(input.EnemyType)
	}
	if err != nil {
		return nil, err
	}

	battle, err := combat.NewBattle(c, enemy, o.roller)
	if err != nil {
		return nil, err
	}

	encounterID := o.idGen.Generate()
	if _, err := o.encounterRepo.Save(ctx, &encounters.SaveInput{Data: &encounters.EncounterData{
		ID:          encounterID,
		CharacterID: c.ID,
		Battle:      battle,
		StartedAt:   o.clock.Now().Unix(),
	}}); err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	slog.InfoContext(ctx, "Encounter started",
		"encounter_id", encounterID,
		"character_id", c.ID,
		"enemy", enemy.Name,
	)
	o.publisher.Publish(ctx, gameevents.EncounterStarted, c, enemy, map[string]any{
		gameevents.KeyEncounterID: encounterID,
	})

	return &StartEncounterOutput{
		EncounterID: encounterID,
		Character:   c.Clone(),
		Enemy:       copyEnemy(enemy),
	}, nil
}

func (o *orchestrator) TakeAction(ctx context.Context, input *TakeActionInput) (*TakeActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	data, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	battle := data.Battle

	// the stored character is authoritative between turns, so items used
	// outside the fight carry into it
	fresh, err := o.loadCharacter(ctx, data.CharacterID)
	if err != nil {
		return nil, err
	}
	*battle.Character() = *fresh

	result, err := battle.Act(combat.ParseAction(input.Action))
	if err != nil {
		return nil, err
	}

	data.Log = append(data.Log, result.Log...)

	out := &TakeActionOutput{
		Result: result,
		Ended:  result.State.IsTerminal(),
		Enemy:  copyEnemy(battle.Enemy()),
	}

	c := battle.Character()
	if result.State == combat.StatePlayerWon {
		out.Reward = battle.Reward()
		levels, err := grantReward(c, out.Reward)
		if err != nil {
			return nil, err
		}
		out.LevelsGained = levels
	}

	saved, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: c})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", c.ID)
	}
	out.Character = saved.Character

	if !out.Ended {
		if _, err := o.encounterRepo.Save(ctx, &encounters.SaveInput{Data: data}); err != nil {
			return nil, errors.Wrap(err, "failed to save encounter")
		}
		return out, nil
	}

	if _, err := o.encounterRepo.Delete(ctx, &encounters.DeleteInput{EncounterID: data.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to remove finished encounter")
	}

	o.recordBattle(ctx, data, result.State, out.Reward)

	slog.InfoContext(ctx, "Encounter ended",
		"encounter_id", data.ID,
		"character_id", c.ID,
		"outcome", result.State,
		"turns", battle.Turn(),
		"xp", out.Reward.XP,
		"gold", out.Reward.Gold,
	)
	o.publisher.Publish(ctx, gameevents.EncounterEnded, saved.Character, battle.Enemy(), map[string]any{
		gameevents.KeyEncounterID: data.ID,
		gameevents.KeyOutcome:     string(result.State),
		gameevents.KeyXP:          out.Reward.XP,
		gameevents.KeyGold:        out.Reward.Gold,
	})
	if out.LevelsGained > 0 {
		o.publisher.Publish(ctx, gameevents.CharacterLeveledUp, saved.Character, nil, map[string]any{
			gameevents.KeyLevel:  saved.Character.Level,
			gameevents.KeyLevels: out.LevelsGained,
		})
	}

	return out, nil
}

func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	data, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	return &GetEncounterOutput{
		EncounterID: data.ID,
		Character:   data.Battle.Character().Clone(),
		Enemy:       copyEnemy(data.Battle.Enemy()),
		State:       data.Battle.State(),
		Turn:        data.Battle.Turn(),
	}, nil
}

func (o *orchestrator) GetBattleHistory(ctx context.Context, input *GetBattleHistoryInput) (*GetBattleHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	// confirms the character exists
	if _, err := o.loadCharacter(ctx, input.CharacterID); err != nil {
		return nil, err
	}
	if o.battleLog == nil {
		return &GetBattleHistoryOutput{}, nil
	}

	out, err := o.battleLog.List(ctx, battlelog.ListInput{
		CharacterID: input.CharacterID,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read battle history")
	}
	return &GetBattleHistoryOutput{Records: out.Records}, nil
}

// recordBattle stores a finished fight. The character is already saved, so a
// failure here is logged rather than returned.
func (o *orchestrator) recordBattle(ctx context.Context, data *encounters.EncounterData, state combat.State, reward combat.Reward) {
	if o.battleLog == nil {
		return
	}
	_, err := o.battleLog.Append(ctx, battlelog.AppendInput{Record: &battlelog.Record{
		EncounterID: data.ID,
		CharacterID: data.CharacterID,
		Enemy:       data.Battle.Enemy().Name,
		Outcome:     string(state),
		Turns:       data.Battle.Turn(),
		XP:          reward.XP,
		Gold:        reward.Gold,
		Log:         data.Log,
	}})
	if err != nil {
		slog.WarnContext(ctx, "Failed to record battle",
			"encounter_id", data.ID,
			"character_id", data.CharacterID,
			"error", err)
	}
}

// grantReward applies a won battle's experience and gold
func grantReward(c *entities.Character, r combat.Reward) (int, error) {
	res, err := progression.GainExperience(c, r.XP)
	if err != nil {
		return 0, err
	}
	if err := progression.AddGold(c, r.Gold); err != nil {
		return 0, err
	}
	return res.LevelsGained, nil
}

func (o *orchestrator) loadCharacter(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load character %s", id)
	}
	return out.Character, nil
}

func (o *orchestrator) loadEncounter(ctx context.Context, id string) (*encounters.EncounterData, error) {
	if id == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}
	out, err := o.encounterRepo.Get(ctx, &encounters.GetInput{EncounterID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load encounter %s", id)
	}
	return out.Data, nil
}

func copyEnemy(e *entities.Enemy) *entities.Enemy {
	out := *e
	return &out
}
