package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

func TestParseStatDelta(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    entities.StatDelta
		wantErr bool
	}{
		{name: "strength bonus", input: "strength:5", want: entities.StatDelta{Stat: entities.StatStrength, Value: 5}},
		{name: "spaces and case", input: " Max_Health : 20 ", want: entities.StatDelta{Stat: entities.StatMaxHealth, Value: 20}},
		{name: "negative value", input: "magic:-2", want: entities.StatDelta{Stat: entities.StatMagic, Value: -2}},
		{name: "missing separator", input: "strength5", wantErr: true},
		{name: "unknown stat", input: "luck:3", wantErr: true},
		{name: "not a number", input: "health:lots", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entities.ParseStatDelta(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestItemDefinitionValidate(t *testing.T) {
	valid := &entities.ItemDefinition{
		ID:     "iron_sword",
		Name:   "Iron Sword",
		Type:   entities.ItemTypeWeapon,
		Effect: entities.StatDelta{Stat: entities.StatStrength, Value: 5},
		Cost:   50,
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 25, valid.SellPrice())

	gearHealth := *valid
	gearHealth.Effect = entities.StatDelta{Stat: entities.StatHealth, Value: 5}
	assert.Error(t, gearHealth.Validate())

	cursed := *valid
	cursed.Type = entities.ItemTypeArmor
	cursed.Effect = entities.StatDelta{Stat: entities.StatMaxHealth, Value: -50}
	err := cursed.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative effect")

	potion := &entities.ItemDefinition{
		ID:     "potion",
		Name:   "Potion",
		Type:   entities.ItemTypeConsumable,
		Effect: entities.StatDelta{Stat: entities.StatHealth, Value: 30},
		Cost:   25,
	}
	require.NoError(t, potion.Validate())
	assert.Equal(t, 12, potion.SellPrice())

	bad := &entities.ItemDefinition{Type: "trinket", Cost: -1}
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost")
	assert.Contains(t, err.Error(), "type")
}

func TestQuestDefinition(t *testing.T) {
	q := &entities.QuestDefinition{ID: "first", Title: "First", RequiredLevel: 1}
	assert.False(t, q.HasPrerequisite())
	q.Normalize()
	assert.Equal(t, entities.NoPrerequisite, q.Prerequisite)
	require.NoError(t, q.Validate())

	q.Prerequisite = "none"
	assert.False(t, q.HasPrerequisite())

	self := &entities.QuestDefinition{ID: "loop", Title: "Loop", RequiredLevel: 1, Prerequisite: "loop"}
	assert.Error(t, self.Validate())

	zeroLevel := &entities.QuestDefinition{ID: "x", Title: "X"}
	assert.Error(t, zeroLevel.Validate())
}

func TestNewEnemy(t *testing.T) {
	e, err := entities.NewEnemy(entities.EnemyConfig{Name: "Goblin", MaxHealth: 50, Strength: 8, Magic: 2, XPReward: 25, GoldReward: 10})
	require.NoError(t, err)
	assert.Equal(t, 50, e.Health)
	assert.Equal(t, "Goblin", e.GetID())
	assert.Equal(t, "enemy", e.GetType())

	assert.Equal(t, 0, e.TakeDamage(80))
	assert.True(t, e.IsDead())

	_, err = entities.NewEnemy(entities.EnemyConfig{Name: "Ghost"})
	assert.True(t, errors.IsInvalidArgument(err))
}
