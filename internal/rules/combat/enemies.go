package combat

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Enemy template names
const (
	EnemyGoblin = "goblin"
	EnemyOrc    = "orc"
	EnemyDragon = "dragon"
)

var enemyTemplates = map[string]entities.EnemyConfig{
	EnemyGoblin: {Name: "Goblin", MaxHealth: 50, Strength: 8, Magic: 2, XPReward: 25, GoldReward: 10},
	EnemyOrc:    {Name: "Orc", MaxHealth: 80, Strength: 12, Magic: 5, XPReward: 50, GoldReward: 25},
	EnemyDragon: {Name: "Dragon", MaxHealth: 200, Strength: 25, Magic: 15, XPReward: 200, GoldReward: 100},
}

// EnemyTemplates lists the known template names
func EnemyTemplates() []string {
	names := make([]string, 0, len(enemyTemplates))
	for name := range enemyTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEnemyFromTemplate creates a fresh enemy from a named template
func NewEnemyFromTemplate(name string) (*entities.Enemy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	cfg, ok := enemyTemplates[key]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown enemy type %q", name).
			WithMeta("known", EnemyTemplates())
	}
	cfg.ID = key
	return entities.NewEnemy(cfg)
}

// EnemyForLevel picks the template matching a character level
func EnemyForLevel(level int) (*entities.Enemy, error) {
	switch {
	case level <= 2:
		return NewEnemyFromTemplate(EnemyGoblin)
	case level <= 5:
		return NewEnemyFromTemplate(EnemyOrc)
	default:
		return NewEnemyFromTemplate(EnemyDragon)
	}
}
