package inventory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/inventory"
)

type InventoryTestSuite struct {
	suite.Suite
	character *entities.Character
	potion    *entities.ItemDefinition
	sword     *entities.ItemDefinition
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func (s *InventoryTestSuite) SetupTest() {
	var err error
	s.character, err = entities.NewCharacter("Vex", entities.ArchetypeRogue)
	s.Require().NoError(err)

	s.potion = &entities.ItemDefinition{
		ID:     "health_potion",
		Name:   "Health Potion",
		Type:   entities.ItemTypeConsumable,
		Effect: entities.StatDelta{Stat: entities.StatHealth, Value: 20},
		Cost:   25,
	}
	s.sword = &entities.ItemDefinition{
		ID:     "iron_sword",
		Name:   "Iron Sword",
		Type:   entities.ItemTypeWeapon,
		Effect: entities.StatDelta{Stat: entities.StatStrength, Value: 5},
		Cost:   50,
	}
}

func (s *InventoryTestSuite) fill(n int) {
	for i := 0; i < n; i++ {
		s.Require().NoError(inventory.Add(s.character, fmt.Sprintf("junk_%d", i)))
	}
}

func (s *InventoryTestSuite) TestAddRemoveCount() {
	s.Require().NoError(inventory.Add(s.character, "health_potion"))
	s.Require().NoError(inventory.Add(s.character, "health_potion"))
	s.Require().NoError(inventory.Add(s.character, "iron_sword"))

	s.Equal(2, inventory.Count(s.character, "health_potion"))
	s.True(inventory.Has(s.character, "iron_sword"))
	s.Equal(3, inventory.Size(s.character))
	s.Equal(17, inventory.SpaceRemaining(s.character))
	s.Equal(map[string]int{"health_potion": 2, "iron_sword": 1}, inventory.Counts(s.character))

	s.Require().NoError(inventory.Remove(s.character, "health_potion"))
	s.Equal(1, inventory.Count(s.character, "health_potion"))

	err := inventory.Remove(s.character, "missing")
	s.True(errors.Is(err, errors.ErrItemNotFound))
	s.Equal(2, inventory.Size(s.character))
}

func (s *InventoryTestSuite) TestAddAtCapacity() {
	s.fill(inventory.Capacity)

	err := inventory.Add(s.character, "health_potion")
	s.Require().Error(err)
	s.True(errors.Is(err, errors.ErrInventoryFull))
	s.True(errors.IsResourceExhausted(err))
	s.Equal(inventory.Capacity, inventory.Size(s.character))
	s.Equal(0, inventory.SpaceRemaining(s.character))
}

func (s *InventoryTestSuite) TestClearReturnsRemoved() {
	s.fill(3)

	removed := inventory.Clear(s.character)
	s.Equal([]string{"junk_0", "junk_1", "junk_2"}, removed)
	s.Equal(0, inventory.Size(s.character))
	s.Equal(inventory.Capacity, inventory.SpaceRemaining(s.character))
}

func (s *InventoryTestSuite) TestPurchase() {
	s.Require().NoError(inventory.Purchase(s.character, s.sword))
	s.Equal(50, s.character.Gold)
	s.True(inventory.Has(s.character, "iron_sword"))
}

func (s *InventoryTestSuite) TestPurchaseInsufficientGold() {
	s.character.Gold = 10

	err := inventory.Purchase(s.character, s.sword)
	s.True(errors.Is(err, errors.ErrInsufficientResources))
	s.Equal(10, s.character.Gold)
	s.Equal(0, inventory.Size(s.character))
}

func (s *InventoryTestSuite) TestPurchaseFullInventoryKeepsGold() {
	s.fill(inventory.Capacity)

	err := inventory.Purchase(s.character, s.potion)
	s.True(errors.Is(err, errors.ErrInventoryFull))
	s.Equal(100, s.character.Gold)
}

func (s *InventoryTestSuite) TestSell() {
	s.Require().NoError(inventory.Add(s.character, "health_potion"))

	price, err := inventory.Sell(s.character, s.potion)
	s.Require().NoError(err)
	s.Equal(12, price)
	s.Equal(112, s.character.Gold)
	s.False(inventory.Has(s.character, "health_potion"))

	_, err = inventory.Sell(s.character, s.potion)
	s.True(errors.Is(err, errors.ErrItemNotFound))
	s.Equal(112, s.character.Gold)
}

func (s *InventoryTestSuite) TestUseConsumableCapsHealth() {
	s.Require().NoError(inventory.Add(s.character, "health_potion"))
	s.character.TakeDamage(5)

	res, err := inventory.Use(s.character, "health_potion", s.potion)
	s.Require().NoError(err)
	s.Equal(5, res.Applied)
	s.Equal(s.character.MaxHealth, s.character.Health)
	s.False(inventory.Has(s.character, "health_potion"))
}

func (s *InventoryTestSuite) TestUseRejectsGear() {
	s.Require().NoError(inventory.Add(s.character, "iron_sword"))

	_, err := inventory.Use(s.character, "iron_sword", s.sword)
	s.True(errors.Is(err, errors.ErrWrongItemType))
	s.True(inventory.Has(s.character, "iron_sword"))
	s.Equal(12, s.character.Strength)
}

func (s *InventoryTestSuite) TestUseMissingItem() {
	_, err := inventory.Use(s.character, "health_potion", s.potion)
	s.True(errors.Is(err, errors.ErrItemNotFound))
}
