package character

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/inventory"
)

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Name      string
	Archetype string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for loading a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for loading a character
type GetCharacterOutput struct {
	Character *entities.Character
	Stats     equipment.Stats
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// PurchaseItemInput defines the request for buying an item
type PurchaseItemInput struct {
	CharacterID string
	ItemID      string
}

// PurchaseItemOutput defines the response for buying an item
type PurchaseItemOutput struct {
	Character *entities.Character
	Cost      int
}

// SellItemInput defines the request for selling an item
type SellItemInput struct {
	CharacterID string
	ItemID      string
}

// SellItemOutput defines the response for selling an item
type SellItemOutput struct {
	Character *entities.Character
	Earned    int
}

// UseItemInput defines the request for using a consumable
type UseItemInput struct {
	CharacterID string
	ItemID      string
}

// UseItemOutput defines the response for using a consumable
type UseItemOutput struct {
	Character *entities.Character
	Result    *inventory.UseResult
}

// EquipItemInput defines the request for equipping an owned item
type EquipItemInput struct {
	CharacterID string
	ItemID      string
}

// EquipItemOutput defines the response for equipping an item
type EquipItemOutput struct {
	Character *entities.Character
	Result    *equipment.EquipResult
}

// UnequipItemInput defines the request for emptying a slot
type UnequipItemInput struct {
	CharacterID string
	Slot        string
}

// UnequipItemOutput defines the response for emptying a slot. ItemID is empty
// when the slot was already empty.
type UnequipItemOutput struct {
	Character *entities.Character
	ItemID    string
}

// ReviveCharacterInput defines the request for reviving a dead character
type ReviveCharacterInput struct {
	CharacterID string
}

// ReviveCharacterOutput defines the response for reviving a character
type ReviveCharacterOutput struct {
	Character *entities.Character
	Revived   bool
}
