// Package character implements the character orchestrator: creation, the
// shop, consumables and equipment.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/inventory"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/progression"
)

// Service defines the character operations
type Service interface {
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// PurchaseItem buys one unit of a catalogue item
	PurchaseItem(ctx context.Context, input *PurchaseItemInput) (*PurchaseItemOutput, error)
	// SellItem sells one unit back for half its cost
	SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error)
	// UseItem consumes a consumable from the inventory
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)

	// ReviveCharacter returns a dead character to half health
	ReviveCharacter(ctx context.Context, input *ReviveCharacterInput) (*ReviveCharacterOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Catalog       *catalog.Catalog
	IDGenerator   idgen.Generator
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
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	catalog       *catalog.Catalog
	idGen         idgen.Generator
	publisher     *gameevents.Publisher
}

// NewOrchestrator creates a new character orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		catalog:       cfg.Catalog,
		idGen:         cfg.IDGenerator,
		publisher:     gameevents.NewPublisher(cfg.EventBus),
	}, nil
}

func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	archetype, err := entities.ParseArchetype(input.Archetype)
	if err != nil {
		return nil, err
	}

	c, err := entities.NewCharacter(input.Name, archetype)
	if err != nil {
		return nil, err
	}
	c.ID = o.idGen.Generate()

	out, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: c})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save character")
	}

	slog.InfoContext(ctx, "Character created",
		"character_id", c.ID,
		"name", c.Name,
		"archetype", c.Archetype,
	)
	o.publisher.Publish(ctx, gameevents.CharacterCreated, out.Character, nil, nil)

	return &CreateCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{
		Character: c,
		Stats:     equipment.EffectiveStats(c),
	}, nil
}

func (o *orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	out, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}
	return &ListCharactersOutput{Characters: out.Characters}, nil
}

func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}

	slog.InfoContext(ctx, "Character deleted", "character_id", input.CharacterID)
	o.publisher.Publish(ctx, gameevents.CharacterDeleted, nil, nil,
		map[string]any{"character_id": input.CharacterID})

	return &DeleteCharacterOutput{}, nil
}

func (o *orchestrator) PurchaseItem(ctx context.Context, input *PurchaseItemInput) (*PurchaseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}
	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := inventory.Purchase(c, def); err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item purchased",
		"character_id", c.ID,
		"item_id", def.ID,
		"cost", def.Cost,
		"gold", c.Gold,
	)
	o.publisher.Publish(ctx, gameevents.ItemPurchased, c, nil, map[string]any{
		gameevents.KeyItemID: def.ID,
		gameevents.KeyGold:   -def.Cost,
	})

	return &PurchaseItemOutput{Character: c, Cost: def.Cost}, nil
}

func (o *orchestrator) SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}
	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	earned, err := inventory.Sell(c, def)
	if err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item sold",
		"character_id", c.ID,
		"item_id", def.ID,
		"earned", earned,
	)
	o.publisher.Publish(ctx, gameevents.ItemSold, c, nil, map[string]any{
		gameevents.KeyItemID: def.ID,
		gameevents.KeyGold:   earned,
	})

	return &SellItemOutput{Character: c, Earned: earned}, nil
}

func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}
	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	result, err := inventory.Use(c, def.ID, def)
	if err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item used",
		"character_id", c.ID,
		"item_id", def.ID,
		"stat", result.Effect.Stat,
		"applied", result.Applied,
	)
	data := map[string]any{gameevents.KeyItemID: def.ID}
	data[string(result.Effect.Stat)] = result.Applied
	o.publisher.Publish(ctx, gameevents.ItemUsed, c, nil, data)

	return &UseItemOutput{Character: c, Result: result}, nil
}

func (o *orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	// ownership is checked before the catalogue so an unknown id the
	// character doesn't hold reports ItemNotOwned
	if !inventory.Has(c, input.ItemID) {
		return nil, errors.NewReasonf(errors.ReasonItemNotOwned,
			"%s is not in the inventory", input.ItemID).
			WithMeta("item_id", input.ItemID)
	}
	def, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}

	result, err := equipment.Equip(c, input.ItemID, def)
	if err != nil {
		return nil, err
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item equipped",
		"character_id", c.ID,
		"item_id", result.ItemID,
		"slot", result.Slot,
		"replaced", result.Replaced,
	)
	o.publisher.Publish(ctx, gameevents.ItemEquipped, c, nil, map[string]any{
		gameevents.KeyItemID:   result.ItemID,
		gameevents.KeySlot:     string(result.Slot),
		gameevents.KeyReplaced: result.Replaced,
	})

	return &EquipItemOutput{Character: c, Result: result}, nil
}

func (o *orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	itemID, err := equipment.Unequip(c, entities.Slot(input.Slot))
	if err != nil {
		return nil, err
	}
	if itemID == "" {
		return &UnequipItemOutput{Character: c}, nil
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Item unequipped",
		"character_id", c.ID,
		"item_id", itemID,
		"slot", input.Slot,
	)
	o.publisher.Publish(ctx, gameevents.ItemUnequipped, c, nil, map[string]any{
		gameevents.KeyItemID: itemID,
		gameevents.KeySlot:   input.Slot,
	})

	return &UnequipItemOutput{Character: c, ItemID: itemID}, nil
}

func (o *orchestrator) ReviveCharacter(ctx context.Context, input *ReviveCharacterInput) (*ReviveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if !progression.Revive(c) {
		return &ReviveCharacterOutput{Character: c}, nil
	}
	if c, err = o.save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Character revived",
		"character_id", c.ID,
		"health", c.Health,
	)
	o.publisher.Publish(ctx, gameevents.CharacterRevived, c, nil, nil)

	return &ReviveCharacterOutput{Character: c, Revived: true}, nil
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
