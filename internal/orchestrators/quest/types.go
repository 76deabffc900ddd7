package quest

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	questrules "github.com/KirkDiggler/rpg-chronicles/internal/rules/quest"
)

// AcceptQuestInput defines the request for accepting a quest
type AcceptQuestInput struct {
	CharacterID string
	QuestID     string
}

// AcceptQuestOutput defines the response for accepting a quest
type AcceptQuestOutput struct {
	Character *entities.Character
	Quest     *entities.QuestDefinition
}

// CompleteQuestInput defines the request for completing a quest
type CompleteQuestInput struct {
	CharacterID string
	QuestID     string
}

// CompleteQuestOutput defines the response for completing a quest
type CompleteQuestOutput struct {
	Character *entities.Character
	Reward    *questrules.Reward
}

// AbandonQuestInput defines the request for abandoning a quest
type AbandonQuestInput struct {
	CharacterID string
	QuestID     string
}

// AbandonQuestOutput defines the response for abandoning a quest
type AbandonQuestOutput struct {
	Character *entities.Character
}

// GetQuestLogInput defines the request for a character's quest log
type GetQuestLogInput struct {
	CharacterID string
}

// GetQuestLogOutput groups the catalogue by the character's progress
type GetQuestLogOutput struct {
	Available            []*entities.QuestDefinition
	Active               []*entities.QuestDefinition
	Completed            []*entities.QuestDefinition
	CompletionPercentage float64
	Totals               questrules.Totals
}

// GetQuestChainInput defines the request for a quest's prerequisite chain
type GetQuestChainInput struct {
	QuestID string
}

// GetQuestChainOutput lists quests from the earliest prerequisite to the
// requested quest
type GetQuestChainOutput struct {
	Chain []*entities.QuestDefinition
}
