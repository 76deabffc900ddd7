package entities

import (
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// NoPrerequisite marks a quest that has no prerequisite
const NoPrerequisite = "NONE"

// QuestDefinition is immutable reference data for a quest
type QuestDefinition struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	RewardXP      int    `json:"reward_xp"`
	RewardGold    int    `json:"reward_gold"`
	RequiredLevel int    `json:"required_level"`
	Prerequisite  string `json:"prerequisite"`
}

// HasPrerequisite reports whether another quest must be completed first
func (q *QuestDefinition) HasPrerequisite() bool {
	return q.Prerequisite != "" && !strings.EqualFold(q.Prerequisite, NoPrerequisite)
}

// Normalize rewrites an empty or differently cased sentinel to NoPrerequisite
func (q *QuestDefinition) Normalize() {
	if !q.HasPrerequisite() {
		q.Prerequisite = NoPrerequisite
	}
}

// Validate checks the fields of a single definition. Graph level checks
// (dangling prerequisites, cycles) live with the quest rules.
func (q *QuestDefinition) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", q.ID, vb)
	errors.ValidateRequired("title", q.Title, vb)
	errors.ValidateMin("reward_xp", q.RewardXP, 0, vb)
	errors.ValidateMin("reward_gold", q.RewardGold, 0, vb)
	errors.ValidateMin("required_level", q.RequiredLevel, 1, vb)
	if q.HasPrerequisite() && q.Prerequisite == q.ID {
		vb.Field("prerequisite", "quest cannot require itself")
	}

	return vb.Build()
}
