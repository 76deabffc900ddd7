package encounters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Battles
// hold a live roller so they are stored by reference.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*EncounterData
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*EncounterData),
	}
}

// Save stores an encounter
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Data == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Data.ID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}
	if input.Data.Battle == nil {
		return nil, errors.InvalidArgument("battle is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data := *input.Data
	r.store[data.ID] = &data

	return &SaveOutput{}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.store[input.EncounterID]
	if !exists {
		return nil, errors.NotFoundf("encounter %s not found", input.EncounterID).
			WithMeta("encounter_id", input.EncounterID)
	}

	out := *data
	return &GetOutput{Data: &out}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.EncounterID]; !exists {
		return nil, errors.NotFoundf("encounter %s not found", input.EncounterID)
	}
	delete(r.store, input.EncounterID)

	return &DeleteOutput{}, nil
}

// ListByCharacter returns the encounters a character started
func (r *InMemoryRepository) ListByCharacter(_ context.Context, input *ListByCharacterInput) (*ListByCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, data := range r.store {
		if data.CharacterID == input.CharacterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return &ListByCharacterOutput{EncounterIDs: ids}, nil
}
