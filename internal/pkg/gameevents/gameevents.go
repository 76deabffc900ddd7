// Package gameevents names the domain events the orchestrators publish and
// wraps the toolkit event bus.
package gameevents

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types
const (
	CharacterCreated   = "character.created"
	CharacterDeleted   = "character.deleted"
	CharacterLeveledUp = "character.leveled_up"
	CharacterRevived   = "character.revived"

	ItemPurchased  = "item.purchased"
	ItemSold       = "item.sold"
	ItemUsed       = "item.used"
	ItemEquipped   = "item.equipped"
	ItemUnequipped = "item.unequipped"

	QuestAccepted  = "quest.accepted"
	QuestCompleted = "quest.completed"
	QuestAbandoned = "quest.abandoned"

	EncounterStarted = "encounter.started"
	EncounterEnded   = "encounter.ended"
)

// Context keys set on published events
const (
	KeyItemID      = "item_id"
	KeyQuestID     = "quest_id"
	KeyEncounterID = "encounter_id"
	KeySlot        = "slot"
	KeyLevel       = "level"
	KeyLevels      = "levels_gained"
	KeyGold        = "gold"
	KeyXP          = "xp"
	KeyOutcome     = "outcome"
	KeyReplaced    = "replaced"
)

// Publisher sends domain events to a bus. Delivery failures are logged, the
// state change they describe has already been saved.
type Publisher struct {
	bus events.EventBus
}

// NewPublisher wraps bus
func NewPublisher(bus events.EventBus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish sends an event of eventType with data stored on its context
func (p *Publisher) Publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	if p == nil || p.bus == nil {
		return
	}

	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := p.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event",
			"event_type", eventType,
			"source_id", entityID(source),
			"error", err,
		)
	}
}

func entityID(e core.Entity) string {
	if e == nil {
		return ""
	}
	return e.GetID()
}
