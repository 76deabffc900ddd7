// Package encounters stores battles that are in progress
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/rpg-chronicles/internal/repositories/encounters Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-chronicles/internal/rules/combat"
)

// Repository defines the storage interface for encounters
type Repository interface {
	// Save stores an encounter, replacing any with the same ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves an encounter by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes an encounter
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListByCharacter returns the encounter IDs a character is fighting in
	ListByCharacter(ctx context.Context, input *ListByCharacterInput) (*ListByCharacterOutput, error)
}

// EncounterData is a live battle and who started it
type EncounterData struct {
	ID          string
	CharacterID string
	Battle      *combat.Battle
	StartedAt   int64
	// Log collects every turn's narration in order
	Log         []string
}

// SaveInput defines the request for saving an encounter
type SaveInput struct {
	Data *EncounterData
}

// SaveOutput defines the response for saving an encounter
type SaveOutput struct{}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	EncounterID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Data *EncounterData
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	EncounterID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct{}

// ListByCharacterInput defines the request for listing a character's encounters
type ListByCharacterInput struct {
	CharacterID string
}

// ListByCharacterOutput lists encounter IDs in sorted order
type ListByCharacterOutput struct {
	EncounterIDs []string
}
