package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-chronicles/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	characterIndexKey  = "character:index"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	id := input.Character.ID
	key := characterKeyPrefix + id

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", id)
	}

	stored := input.Character.Clone()
	now := r.clock.Now().Unix()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, characterIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.DebugContext(ctx, "Stored character", "character_id", id)
	return &CreateOutput{Character: stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	c, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	id := input.Character.ID
	existing, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}

	stored := input.Character.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, characterKeyPrefix+id, data, 0)
	pipe.SAdd(ctx, characterIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: stored}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := characterKeyPrefix + input.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, characterIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, characterIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read character index")
	}
	sort.Strings(ids)

	characters := make([]*entities.Character, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		c, err := r.get(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				stale = append(stale, id)
				continue
			}
			return nil, err
		}
		characters = append(characters, c)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, characterIndexKey, stale...).Err(); err != nil {
			slog.WarnContext(ctx, "Failed to clean stale character index entries",
				"count", len(stale),
				"error", err)
		}
	}

	return &ListOutput{Characters: characters}, nil
}

func (r *redisRepository) get(ctx context.Context, id string) (*entities.Character, error) {
	result, err := r.client.Get(ctx, characterKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var c entities.Character
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal character")
	}
	if c.Equipped == nil {
		c.Equipped = make(map[entities.Slot]*entities.ItemDefinition)
	}
	return &c, nil
}
