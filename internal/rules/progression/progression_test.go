package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/progression"
)

type ProgressionTestSuite struct {
	suite.Suite
	character *entities.Character
}

func TestProgressionSuite(t *testing.T) {
	suite.Run(t, new(ProgressionTestSuite))
}

func (s *ProgressionTestSuite) SetupTest() {
	var err error
	s.character, err = entities.NewCharacter("Brom", entities.ArchetypeWarrior)
	s.Require().NoError(err)
}

func (s *ProgressionTestSuite) TestExactThresholdLevelsOnce() {
	res, err := progression.GainExperience(s.character, 100)
	s.Require().NoError(err)

	s.True(res.LeveledUp())
	s.Equal(1, res.LevelsGained)
	s.Equal(2, s.character.Level)
	s.Equal(0, s.character.Experience)
	s.Equal(130, s.character.MaxHealth)
	s.Equal(130, s.character.Health)
	s.Equal(17, s.character.Strength)
	s.Equal(7, s.character.Magic)
}

func (s *ProgressionTestSuite) TestCascadeUsesUpdatedLevel() {
	// level 1 needs 100, level 2 then needs 200
	res, err := progression.GainExperience(s.character, 300)
	s.Require().NoError(err)

	s.Equal(2, res.LevelsGained)
	s.Equal(3, res.NewLevel)
	s.Equal(0, s.character.Experience)
	s.Equal(140, s.character.MaxHealth)
	s.Equal(19, s.character.Strength)
	s.Equal(9, s.character.Magic)
}

func (s *ProgressionTestSuite) TestCascadeStopsShortOfNextThreshold() {
	res, err := progression.GainExperience(s.character, 299)
	s.Require().NoError(err)

	s.Equal(1, res.LevelsGained)
	s.Equal(2, s.character.Level)
	s.Equal(199, s.character.Experience)
}

func (s *ProgressionTestSuite) TestBelowThresholdNoLevel() {
	s.character.TakeDamage(30)

	res, err := progression.GainExperience(s.character, 99)
	s.Require().NoError(err)

	s.False(res.LeveledUp())
	s.Equal(1, s.character.Level)
	s.Equal(99, s.character.Experience)
	s.Equal(90, s.character.Health)
}

func (s *ProgressionTestSuite) TestDeadCharacterCannotGainExperience() {
	s.character.Experience = 40
	s.character.TakeDamage(s.character.Health)

	_, err := progression.GainExperience(s.character, 50)
	s.Require().Error(err)
	s.True(errors.Is(err, errors.ErrCharacterDead))
	s.True(errors.IsInsufficientResources(err))
	s.Equal(40, s.character.Experience)
}

func (s *ProgressionTestSuite) TestAddGold() {
	s.Require().NoError(progression.AddGold(s.character, 50))
	s.Equal(150, s.character.Gold)

	s.Require().NoError(progression.AddGold(s.character, -150))
	s.Equal(0, s.character.Gold)

	err := progression.AddGold(s.character, -1)
	s.True(errors.Is(err, errors.ErrNegativeGold))
	s.Equal(0, s.character.Gold)
}

func (s *ProgressionTestSuite) TestHeal() {
	s.character.TakeDamage(10)
	s.Equal(10, progression.Heal(s.character, 25))
	s.Equal(0, progression.Heal(s.character, 25))
}

func (s *ProgressionTestSuite) TestRevive() {
	s.False(progression.Revive(s.character))
	s.Equal(120, s.character.Health)

	s.character.TakeDamage(1000)
	s.True(progression.IsDead(s.character))
	s.True(progression.Revive(s.character))
	s.Equal(60, s.character.Health)
	s.False(progression.IsDead(s.character))
}
