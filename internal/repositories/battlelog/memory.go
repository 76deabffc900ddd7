package battlelog

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
)

type memoryRepository struct {
	mu         sync.Mutex
	clock      clock.Clock
	maxEntries int
	logs       map[string][]*Record
}

// NewInMemory creates a repository that keeps history for the life of the
// process. A nil clock uses the real clock.
func NewInMemory(c clock.Clock) Repository {
	if c == nil {
		c = clock.New()
	}
	return &memoryRepository{
		clock:      c,
		maxEntries: DefaultMaxEntries,
		logs:       make(map[string][]*Record),
	}
}

func (r *memoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	record, _, err := prepare(input, r.clock)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := append([]*Record{record}, r.logs[record.CharacterID]...)
	if len(log) > r.maxEntries {
		log = log[:r.maxEntries]
	}
	r.logs[record.CharacterID] = log

	return &AppendOutput{Record: copyRecord(record)}, nil
}

func (r *memoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	var records []*Record
	for _, record := range r.logs[input.CharacterID] {
		if now.After(record.ExpiresAt) {
			continue
		}
		records = append(records, copyRecord(record))
		if input.Limit > 0 && len(records) == input.Limit {
			break
		}
	}
	return &ListOutput{Records: records}, nil
}

func (r *memoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.logs[input.CharacterID])
	delete(r.logs, input.CharacterID)
	return &DeleteOutput{RecordsDeleted: n}, nil
}

// prepare validates an append and stamps the record's times
func prepare(input AppendInput, c clock.Clock) (*Record, time.Duration, error) {
	if input.Record == nil {
		return nil, 0, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.CharacterID == "" {
		return nil, 0, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.TTL < 0 {
		return nil, 0, errors.InvalidArgument("ttl cannot be negative")
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	record := copyRecord(input.Record)
	now := c.Now()
	record.EndedAt = now
	record.ExpiresAt = now.Add(ttl)
	return record, ttl, nil
}

func copyRecord(r *Record) *Record {
	out := *r
	out.Log = append([]string(nil), r.Log...)
	return &out
}
