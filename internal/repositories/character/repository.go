// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-chronicles/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	// Returns errors.InvalidArgument for a nil character or empty ID
	// Returns errors.AlreadyExists if a character with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing character
	// Returns errors.NotFound if the character doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stored character ordered by ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListInput defines the input for listing characters
type ListInput struct{}

// ListOutput defines the output for listing characters
type ListOutput struct {
	Characters []*entities.Character
}

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
)

func validateCharacter(c *entities.Character) error {
	if c == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if c.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}
