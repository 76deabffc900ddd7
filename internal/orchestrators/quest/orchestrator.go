// Package quest implements the quest orchestrator
package quest

//go:generate mockgen -destination=mock/mock_service.go -package=questmock github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/quest Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	questrules "github.com/KirkDiggler/rpg-chronicles/internal/rules/quest"
)

// Service defines the quest operations
type Service interface {
	AcceptQuest(ctx context.Context, input *AcceptQuestInput) (*AcceptQuestOutput, error)
	// CompleteQuest grants the quest rewards, possibly levelling up
	CompleteQuest(ctx context.Context, input *CompleteQuestInput) (*CompleteQuestOutput, error)
	AbandonQuest(ctx context.Context, input *AbandonQuestInput) (*AbandonQuestOutput, error)
	GetQuestLog(ctx context.Context, input *GetQuestLogInput) (*GetQuestLogOutput, error)
	GetQuestChain(ctx context.Context, input *GetQuestChainInput) (*GetQuestChainOutput, error)
}

// Config holds the dependencies for the quest orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Catalog       *catalog.Catalog
	EventBus      events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	graph         *questrules.Graph
	publisher     *gameevents.Publisher
}

// NewOrchestrator creates a new quest orchestrator. The catalogue's quest
// graph must be valid.
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	graph := cfg.Catalog.Graph()
	if err := graph.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid quest catalogue")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		graph:         graph,
		publisher:     gameevents.NewPublisher(cfg.EventBus),
	}, nil
}

func (o *orchestrator) AcceptQuest(ctx context.Context, input *AcceptQuestInput) (*AcceptQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	def, err := o.graph.Get(input.QuestID)
	if err != nil {
		return nil, err
	}

	if err := o.graph.Accept(c, def.ID); err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Quest accepted",
		"character_id", c.ID,
		"quest_id", def.ID,
	)
	o.publisher.Publish(ctx, gameevents.QuestAccepted, c, nil, map[string]any{
		gameevents.KeyQuestID: def.ID,
	})

	return &AcceptQuestOutput{Character: c, Quest: def}, nil
}

func (o *orchestrator) CompleteQuest(ctx context.Context, input *CompleteQuestInput) (*CompleteQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	reward, err := o.graph.Complete(c, input.QuestID)
	if err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Quest completed",
		"character_id", c.ID,
		"quest_id", input.QuestID,
		"xp", reward.XP,
		"gold", reward.Gold,
		"levels_gained", reward.LevelsGained,
	)
	o.publisher.Publish(ctx, gameevents.QuestCompleted, c, nil, map[string]any{
		gameevents.KeyQuestID: input.QuestID,
		gameevents.KeyXP:      reward.XP,
		gameevents.KeyGold:    reward.Gold,
	})
	if reward.LevelsGained > 0 {
		o.publisher.Publish(ctx, gameevents.CharacterLeveledUp, c, nil, map[string]any{
			gameevents.KeyLevel:  c.Level,
			gameevents.KeyLevels: reward.LevelsGained,
		})
	}

	return &CompleteQuestOutput{Character: c, Reward: reward}, nil
}

func (o *orchestrator) AbandonQuest(ctx context.Context, input *AbandonQuestInput) (*AbandonQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := o.graph.Abandon(c, input.QuestID); err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Quest abandoned",
		"character_id", c.ID,
		"quest_id", input.QuestID,
	)
	o.publisher.Publish(ctx, gameevents.QuestAbandoned, c, nil, map[string]any{
		gameevents.KeyQuestID: input.QuestID,
	})

	return &AbandonQuestOutput{Character: c}, nil
}

func (o *orchestrator) GetQuestLog(ctx context.Context, input *GetQuestLogInput) (*GetQuestLogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetQuestLogOutput{
		Available:            o.graph.Available(c),
		Active:               o.graph.ActiveQuests(c),
		Completed:            o.graph.CompletedQuests(c),
		CompletionPercentage: o.graph.CompletionPercentage(c),
		Totals:               o.graph.TotalRewards(c),
	}, nil
}

func (o *orchestrator) GetQuestChain(_ context.Context, input *GetQuestChainInput) (*GetQuestChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ids, err := o.graph.PrerequisiteChain(input.QuestID)
	if err != nil {
		return nil, err
	}

	chain := make([]*entities.QuestDefinition, 0, len(ids))
	for _, id := range ids {
		// the chain only holds ids the graph resolved
		def, _ := o.graph.Get(id)
		chain = append(chain, def)
	}
	return &GetQuestChainOutput{Chain: chain}, nil
}

func (o *orchestrator) load(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load character %s", id)
	}
	return out.Character, nil
}

func (o *orchestrator) save(ctx context.Context, c *entities.Character) (*entities.Character, error) {
	out, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: c})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", c.ID)
	}
	return out.Character, nil
}
