package catalog

import (
	"io"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Quest block keys
const (
	keyQuestID       = "QUEST_ID"
	keyTitle         = "TITLE"
	keyDescription   = "DESCRIPTION"
	keyRewardXP      = "REWARD_XP"
	keyRewardGold    = "REWARD_GOLD"
	keyRequiredLevel = "REQUIRED_LEVEL"
	keyPrerequisite  = "PREREQUISITE"
)

// ParseQuests reads quest blocks. Each definition is validated on its own;
// graph checks happen in Catalog.Validate.
func ParseQuests(r io.Reader) (map[string]*entities.QuestDefinition, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}

	quests := make(map[string]*entities.QuestDefinition, len(blocks))
	for _, b := range blocks {
		q, err := parseQuest(b)
		if err != nil {
			return nil, err
		}
		if _, dup := quests[q.ID]; dup {
			return nil, b.fieldError(keyQuestID, "duplicate quest %s", q.ID)
		}
		quests[q.ID] = q
	}
	return quests, nil
}

func parseQuest(b *block) (*entities.QuestDefinition, error) {
	if err := b.require(keyQuestID, keyTitle, keyDescription,
		keyRewardXP, keyRewardGold, keyRequiredLevel, keyPrerequisite); err != nil {
		return nil, err
	}

	q := &entities.QuestDefinition{
		ID:           b.str(keyQuestID),
		Title:        b.str(keyTitle),
		Description:  b.str(keyDescription),
		Prerequisite: b.str(keyPrerequisite),
	}

	var err error
	if q.RewardXP, err = b.integer(keyRewardXP); err != nil {
		return nil, err
	}
	if q.RewardGold, err = b.integer(keyRewardGold); err != nil {
		return nil, err
	}
	if q.RequiredLevel, err = b.integer(keyRequiredLevel); err != nil {
		return nil, err
	}
	q.Normalize()

	if err := q.Validate(); err != nil {
		return nil, errors.Wrapf(err, "block %d", b.index).
			WithMeta("block", b.index).
			WithMeta("line", b.line)
	}
	return q, nil
}
