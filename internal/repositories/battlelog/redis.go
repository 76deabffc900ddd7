package battlelog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-chronicles/internal/redis"
)

// Key pattern: battle_log:{character_id}
const logKeyPrefix = "battle_log:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	Clock      clock.Clock
	MaxEntries int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.MaxEntries < 0 {
		return errors.InvalidArgument("max entries cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	maxEntries int
}

// NewRedisRepository creates a Redis repository that keeps each history as
// a capped list
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		maxEntries: maxEntries,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	record, ttl, err := prepare(input, r.clock)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle record")
	}

	key := logKeyPrefix + record.CharacterID
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.maxEntries-1))
	// the list lives as long as its newest record
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store battle record")
	}

	return &AppendOutput{Record: record}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	raw, err := r.client.LRange(ctx, logKeyPrefix+input.CharacterID, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read battle log")
	}

	now := r.clock.Now()
	records := make([]*Record, 0, len(raw))
	for _, item := range raw {
		var record Record
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable battle record",
				"character_id", input.CharacterID,
				"error", err)
			continue
		}
		if now.After(record.ExpiresAt) {
			continue
		}
		records = append(records, &record)
		if input.Limit > 0 && len(records) == input.Limit {
			break
		}
	}

	return &ListOutput{Records: records}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := logKeyPrefix + input.CharacterID
	pipe := r.client.TxPipeline()
	count := pipe.LLen(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle log")
	}

	return &DeleteOutput{RecordsDeleted: int(count.Val())}, nil
}
