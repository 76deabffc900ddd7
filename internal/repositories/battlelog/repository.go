// Package battlelog keeps a short, expiring history of finished battles per
// character
package battlelog

//go:generate mockgen -destination=mock/mock_repository.go -package=battlelogmock github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog Repository

import (
	"context"
	"time"
)

// Defaults for how much history is kept
const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultMaxEntries = 20
)

// Record is one finished battle
type Record struct {
	EncounterID string    `json:"encounter_id"`
	CharacterID string    `json:"character_id"`
	Enemy       string    `json:"enemy"`
	Outcome     string    `json:"outcome"`
	Turns       int       `json:"turns"`
	XP          int       `json:"xp"`
	Gold        int       `json:"gold"`
	Log         []string  `json:"log"`
	EndedAt     time.Time `json:"ended_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AppendInput contains the record to store. A zero TTL uses DefaultTTL.
type AppendInput struct {
	Record *Record
	TTL    time.Duration
}

// AppendOutput returns the stored record with its timestamps set
type AppendOutput struct {
	Record *Record
}

// ListInput selects a character's history. A zero Limit returns everything kept.
type ListInput struct {
	CharacterID string
	Limit       int
}

// ListOutput holds records newest first
type ListOutput struct {
	Records []*Record
}

// DeleteInput selects the history to drop
type DeleteInput struct {
	CharacterID string
}

// DeleteOutput reports how many records were dropped
type DeleteOutput struct {
	RecordsDeleted int
}

// Repository defines the interface for battle history storage
type Repository interface {
	// Append adds a record to the front of the character's history
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns unexpired records, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete drops a character's whole history
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errRecordNil        = "record cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
)
