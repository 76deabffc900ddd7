package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-chronicles/internal/redis"
)

// RepairInput controls a scan of stored characters
type RepairInput struct {
	Client redisclient.Client
	// Delete removes the bad records found; otherwise they are only reported
	Delete bool
}

// RepairOutput reports what a scan found
type RepairOutput struct {
	Checked   int
	// Corrupt holds keys whose record could not be decoded or whose ID does
	// not match the key
	Corrupt   []string
	// Unindexed holds character IDs that were missing from the index and
	// have been added back
	Unindexed []string
	Deleted   int
}

// Repair scans every character record in Redis. Records that cannot be read
// are reported and, when asked, deleted along with their index entry. Good
// records missing from the index are re-indexed.
func Repair(ctx context.Context, input RepairInput) (*RepairOutput, error) {
	if input.Client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	indexed, err := input.Client.SMembers(ctx, characterIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read character index")
	}
	inIndex := make(map[string]bool, len(indexed))
	for _, id := range indexed {
		inIndex[id] = true
	}

	out := &RepairOutput{}
	iter := input.Client.Scan(ctx, 0, characterKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == characterIndexKey {
			continue
		}
		out.Checked++

		id := strings.TrimPrefix(key, characterKeyPrefix)
		data, err := input.Client.Get(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		var c entities.Character
		if err := json.Unmarshal([]byte(data), &c); err != nil || c.ID != id {
			slog.WarnContext(ctx, "Corrupt character record", "key", key, "error", err)
			out.Corrupt = append(out.Corrupt, key)
			continue
		}

		if !inIndex[id] {
			if err := input.Client.SAdd(ctx, characterIndexKey, id).Err(); err != nil {
				return nil, errors.Wrapf(err, "failed to index %s", id)
			}
			out.Unindexed = append(out.Unindexed, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan character keys")
	}

	sort.Strings(out.Corrupt)
	sort.Strings(out.Unindexed)

	if !input.Delete {
		return out, nil
	}

	for _, key := range out.Corrupt {
		pipe := input.Client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.SRem(ctx, characterIndexKey, strings.TrimPrefix(key, characterKeyPrefix))
		if _, err := pipe.Exec(ctx); err != nil {
			return out, errors.Wrapf(err, "failed to delete %s", key)
		}
		out.Deleted++
	}

	slog.InfoContext(ctx, "Character repair finished",
		"checked", out.Checked,
		"corrupt", len(out.Corrupt),
		"reindexed", len(out.Unindexed),
		"deleted", out.Deleted)
	return out, nil
}
