// Package config reads runtime settings from the environment
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Config holds the settings shared by every command
type Config struct {
	// RedisAddr is the character store; empty keeps characters in memory
	RedisAddr string `env:"CHRONICLES_REDIS_ADDR"`
	// DataDir is where catalogue files are looked up when no explicit path is given
	DataDir   string `env:"CHRONICLES_DATA_DIR" envDefault:"data"`
	QuestFile string `env:"CHRONICLES_QUEST_FILE"`
	ItemFile  string `env:"CHRONICLES_ITEM_FILE"`
	// Seed makes dice rolls reproducible; 0 seeds from the clock
	Seed     int64  `env:"CHRONICLES_SEED"`
	LogLevel string `env:"CHRONICLES_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	if c.QuestFile == "" && c.DataDir == "" {
		vb.Field("quest_file", "is required when data_dir is empty")
	}
	if c.ItemFile == "" && c.DataDir == "" {
		vb.Field("item_file", "is required when data_dir is empty")
	}
	return vb.Build()
}

// QuestPath resolves the quest catalogue path
func (c *Config) QuestPath() string {
	if c.QuestFile != "" {
		return c.QuestFile
	}
	return filepath.Join(c.DataDir, "quests.txt")
}

// ItemPath resolves the item catalogue path
func (c *Config) ItemPath() string {
	if c.ItemFile != "" {
		return c.ItemFile
	}
	return filepath.Join(c.DataDir, "items.txt")
}

// SlogLevel converts LogLevel for the slog handler
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
