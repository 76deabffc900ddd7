package entities

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Enemy is an opponent created for a single encounter. Only Health changes
// once it exists.
type Enemy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Health     int    `json:"health"`
	MaxHealth  int    `json:"max_health"`
	Strength   int    `json:"strength"`
	Magic      int    `json:"magic"`
	XPReward   int    `json:"xp_reward"`
	GoldReward int    `json:"gold_reward"`
}

// EnemyConfig holds the values an enemy is created from
type EnemyConfig struct {
	ID         string
	Name       string
	MaxHealth  int
	Strength   int
	Magic      int
	XPReward   int
	GoldReward int
}

// NewEnemy creates an enemy at full health
func NewEnemy(cfg EnemyConfig) (*Enemy, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", cfg.Name, vb)
	errors.ValidateMin("max_health", cfg.MaxHealth, 1, vb)
	errors.ValidateMin("strength", cfg.Strength, 0, vb)
	errors.ValidateMin("magic", cfg.Magic, 0, vb)
	errors.ValidateMin("xp_reward", cfg.XPReward, 0, vb)
	errors.ValidateMin("gold_reward", cfg.GoldReward, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	id := cfg.ID
	if id == "" {
		id = cfg.Name
	}

	return &Enemy{
		ID:         id,
		Name:       cfg.Name,
		Health:     cfg.MaxHealth,
		MaxHealth:  cfg.MaxHealth,
		Strength:   cfg.Strength,
		Magic:      cfg.Magic,
		XPReward:   cfg.XPReward,
		GoldReward: cfg.GoldReward,
	}, nil
}

// GetID returns the enemy's ID
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType returns the entity type used on the event bus
func (e *Enemy) GetType() string {
	return "enemy"
}

// IsDead reports whether health has reached zero
func (e *Enemy) IsDead() bool {
	return e.Health <= 0
}

// TakeDamage lowers health by n, never below zero, and returns the new health
func (e *Enemy) TakeDamage(n int) int {
	e.Health = applyDamage(e.Health, n)
	return e.Health
}
