package testutils

import (
	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
)

// Catalogue IDs used across tests
const (
	TestCharacterName = "Thorin"

	ItemSword  = "iron_sword"
	ItemStaff  = "oak_staff"
	ItemArmor  = "leather_armor"
	ItemMail   = "chain_mail"
	ItemPotion = "health_potion"
	ItemTonic  = "strength_tonic"

	QuestFirstSteps = "first_steps"
	QuestGoblins    = "goblin_scouts"
)

// CreateTestCharacter returns a fresh character with the given ID
func CreateTestCharacter(id string, archetype entities.Archetype) *entities.Character {
	c, err := entities.NewCharacter(TestCharacterName, archetype)
	if err != nil {
		panic(err)
	}
	c.ID = id
	return c
}

// CreateTestItems returns a small item catalogue independent of the built-in files
func CreateTestItems() map[string]*entities.ItemDefinition {
	return map[string]*entities.ItemDefinition{
		ItemSword: {
			ID: ItemSword, Name: "Iron Sword", Type: entities.ItemTypeWeapon,
			Effect: entities.StatDelta{Stat: entities.StatStrength, Value: 5}, Cost: 50,
		},
		ItemStaff: {
			ID: ItemStaff, Name: "Oak Staff", Type: entities.ItemTypeWeapon,
			Effect: entities.StatDelta{Stat: entities.StatMagic, Value: 6}, Cost: 60,
		},
		ItemArmor: {
			ID: ItemArmor, Name: "Leather Armor", Type: entities.ItemTypeArmor,
			Effect: entities.StatDelta{Stat: entities.StatMaxHealth, Value: 10}, Cost: 40,
		},
		ItemMail: {
			ID: ItemMail, Name: "Chain Mail", Type: entities.ItemTypeArmor,
			Effect: entities.StatDelta{Stat: entities.StatMaxHealth, Value: 25}, Cost: 90,
		},
		ItemPotion: {
			ID: ItemPotion, Name: "Health Potion", Type: entities.ItemTypeConsumable,
			Effect: entities.StatDelta{Stat: entities.StatHealth, Value: 20}, Cost: 25,
		},
		ItemTonic: {
			ID: ItemTonic, Name: "Strength Tonic", Type: entities.ItemTypeConsumable,
			Effect: entities.StatDelta{Stat: entities.StatStrength, Value: 1}, Cost: 30,
		},
	}
}

// CreateTestQuests returns a two quest chain
func CreateTestQuests() map[string]*entities.QuestDefinition {
	return map[string]*entities.QuestDefinition{
		QuestFirstSteps: {
			ID: QuestFirstSteps, Title: "First Steps", RewardXP: 50, RewardGold: 20,
			RequiredLevel: 1, Prerequisite: entities.NoPrerequisite,
		},
		QuestGoblins: {
			ID: QuestGoblins, Title: "Goblin Scouts", RewardXP: 120, RewardGold: 40,
			RequiredLevel: 1, Prerequisite: QuestFirstSteps,
		},
	}
}

// CreateTestCatalog wraps the test items and quests
func CreateTestCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Quests: CreateTestQuests(),
		Items:  CreateTestItems(),
	}
}
