package character

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
)

// memoryRepository keeps characters for the lifetime of the process
type memoryRepository struct {
	mu         sync.RWMutex
	clock      clock.Clock
	characters map[string]*entities.Character
}

// NewInMemory creates a character repository backed by a map. A nil clock
// uses the real clock.
func NewInMemory(c clock.Clock) Repository {
	if c == nil {
		c = clock.New()
	}
	return &memoryRepository{
		clock:      c,
		characters: make(map[string]*entities.Character),
	}
}

func (r *memoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := input.Character.ID
	if _, exists := r.characters[id]; exists {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", id)
	}

	stored := input.Character.Clone()
	now := r.clock.Now().Unix()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.characters[id] = stored

	return &CreateOutput{Character: stored.Clone()}, nil
}

func (r *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[input.ID]
	if !ok {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	return &GetOutput{Character: c.Clone()}, nil
}

func (r *memoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := input.Character.ID
	existing, ok := r.characters[id]
	if !ok {
		return nil, errors.NotFoundf("character with ID %s not found", id)
	}

	stored := input.Character.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.clock.Now().Unix()
	r.characters[id] = stored

	return &UpdateOutput{Character: stored.Clone()}, nil
}

func (r *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[input.ID]; !ok {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	delete(r.characters, input.ID)
	return &DeleteOutput{}, nil
}

func (r *memoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]*entities.Character, 0, len(r.characters))
	for _, c := range r.characters {
		characters = append(characters, c.Clone())
	}
	sort.Slice(characters, func(i, j int) bool {
		return characters[i].ID < characters[j].ID
	})
	return &ListOutput{Characters: characters}, nil
}
