package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-chronicles/internal/config"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "data/quests.txt", cfg.QuestPath())
	assert.Equal(t, "data/items.txt", cfg.ItemPath())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CHRONICLES_REDIS_ADDR", "localhost:6379")
	t.Setenv("CHRONICLES_QUEST_FILE", "/srv/quests.txt")
	t.Setenv("CHRONICLES_DATA_DIR", "/srv/data/")
	t.Setenv("CHRONICLES_SEED", "42")
	t.Setenv("CHRONICLES_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "/srv/quests.txt", cfg.QuestPath())
	assert.Equal(t, "/srv/data/items.txt", cfg.ItemPath())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CHRONICLES_SEED", "not-a-number")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidateLogLevel(t *testing.T) {
	cfg := &config.Config{DataDir: "data", LogLevel: "loud"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}
