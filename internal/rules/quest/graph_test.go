package quest_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/quest"
)

type GraphTestSuite struct {
	suite.Suite
	graph     *quest.Graph
	character *entities.Character
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphTestSuite))
}

func catalogue() map[string]*entities.QuestDefinition {
	return map[string]*entities.QuestDefinition{
		"a": {ID: "a", Title: "Rats in the Cellar", RewardXP: 50, RewardGold: 20, RequiredLevel: 1, Prerequisite: entities.NoPrerequisite},
		"b": {ID: "b", Title: "Goblin Scouts", RewardXP: 100, RewardGold: 40, RequiredLevel: 1, Prerequisite: "a"},
		"c": {ID: "c", Title: "The Orc Chief", RewardXP: 300, RewardGold: 100, RequiredLevel: 3, Prerequisite: "b"},
		"d": {ID: "d", Title: "Lost Ring", RewardXP: 10, RewardGold: 5, RequiredLevel: 1},
	}
}

func (s *GraphTestSuite) SetupTest() {
	s.graph = quest.NewGraph(catalogue())

	var err error
	s.character, err = entities.NewCharacter("Lia", entities.ArchetypeCleric)
	s.Require().NoError(err)
}

func (s *GraphTestSuite) TestAcceptChecksInOrder() {
	testCases := []struct {
		name   string
		setup  func(c *entities.Character)
		quest  string
		reason errors.Reason
	}{
		{
			name:   "unknown quest",
			quest:  "zzz",
			reason: errors.ReasonQuestNotFound,
		},
		{
			name:   "level beats prerequisite",
			quest:  "c",
			reason: errors.ReasonInsufficientLevel,
		},
		{
			name:   "prerequisite not completed",
			quest:  "b",
			reason: errors.ReasonRequirementsNotMet,
		},
		{
			name:   "already completed",
			setup:  func(c *entities.Character) { c.CompletedQuests = []string{"a"} },
			quest:  "a",
			reason: errors.ReasonAlreadyCompleted,
		},
		{
			name:   "already active",
			setup:  func(c *entities.Character) { c.ActiveQuests = []string{"a"} },
			quest:  "a",
			reason: errors.ReasonAlreadyActive,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setup != nil {
				tc.setup(s.character)
			}

			err := s.graph.Accept(s.character, tc.quest)
			s.Require().Error(err)
			s.Equal(tc.reason, errors.GetReason(err))
			s.False(s.graph.CanAccept(s.character, tc.quest))
		})
	}
}

func (s *GraphTestSuite) TestPrerequisiteIsPreconditionUnmet() {
	err := s.graph.Accept(s.character, "b")
	s.True(errors.IsFailedPrecondition(err))
	s.Empty(s.character.ActiveQuests)
}

func (s *GraphTestSuite) TestAcceptAlreadyActiveIsStable() {
	s.Require().NoError(s.graph.Accept(s.character, "a"))
	snapshot := slices.Clone(s.character.ActiveQuests)

	for i := 0; i < 3; i++ {
		err := s.graph.Accept(s.character, "a")
		s.True(errors.Is(err, errors.ErrAlreadyActive))
		s.Equal(snapshot, s.character.ActiveQuests)
	}
}

func (s *GraphTestSuite) TestAbandonRoundTrip() {
	s.Require().NoError(s.graph.Accept(s.character, "d"))
	before := slices.Clone(s.character.ActiveQuests)

	s.Require().NoError(s.graph.Accept(s.character, "a"))
	s.Require().NoError(s.graph.Abandon(s.character, "a"))

	s.Equal(before, s.character.ActiveQuests)
	s.Empty(s.character.CompletedQuests)

	status, err := s.graph.Status(s.character, "a")
	s.Require().NoError(err)
	s.Equal(quest.StatusAvailable, status)
}

func (s *GraphTestSuite) TestAbandonNotActive() {
	err := s.graph.Abandon(s.character, "a")
	s.True(errors.Is(err, errors.ErrNotActive))
	s.True(errors.IsInvalidState(err))
}

func (s *GraphTestSuite) TestCompleteGrantsRewards() {
	s.Require().NoError(s.graph.Accept(s.character, "a"))

	reward, err := s.graph.Complete(s.character, "a")
	s.Require().NoError(err)

	s.Equal(50, reward.XP)
	s.Equal(20, reward.Gold)
	s.Equal(0, reward.LevelsGained)
	s.Equal(50, s.character.Experience)
	s.Equal(120, s.character.Gold)
	s.False(s.character.IsQuestActive("a"))
	s.True(s.character.IsQuestCompleted("a"))

	// b unlocks once a is done
	s.True(s.graph.CanAccept(s.character, "b"))
}

func (s *GraphTestSuite) TestCompleteCanLevelUp() {
	s.character.CompletedQuests = []string{"a"}
	s.Require().NoError(s.graph.Accept(s.character, "b"))

	reward, err := s.graph.Complete(s.character, "b")
	s.Require().NoError(err)
	s.Equal(1, reward.LevelsGained)
	s.Equal(2, s.character.Level)
}

func (s *GraphTestSuite) TestCompleteNotActive() {
	_, err := s.graph.Complete(s.character, "a")
	s.True(errors.Is(err, errors.ErrNotActive))

	_, err = s.graph.Complete(s.character, "missing")
	s.True(errors.Is(err, errors.ErrQuestNotFound))
}

func (s *GraphTestSuite) TestCompleteWhileDeadChangesNothing() {
	s.Require().NoError(s.graph.Accept(s.character, "a"))
	s.character.TakeDamage(s.character.Health)

	_, err := s.graph.Complete(s.character, "a")
	s.True(errors.Is(err, errors.ErrCharacterDead))
	s.True(s.character.IsQuestActive("a"))
	s.Empty(s.character.CompletedQuests)
	s.Equal(100, s.character.Gold)
}

func (s *GraphTestSuite) TestStatus() {
	s.character.CompletedQuests = []string{"a"}
	s.character.ActiveQuests = []string{"b"}

	expected := map[string]quest.Status{
		"a": quest.StatusCompleted,
		"b": quest.StatusActive,
		"c": quest.StatusLocked,
		"d": quest.StatusAvailable,
	}
	for id, want := range expected {
		got, err := s.graph.Status(s.character, id)
		s.Require().NoError(err)
		s.Equal(want, got, id)
	}

	_, err := s.graph.Status(s.character, "nope")
	s.True(errors.IsNotFound(err))
}

func (s *GraphTestSuite) TestPrerequisiteChain() {
	chain, err := s.graph.PrerequisiteChain("c")
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, chain)

	chain, err = s.graph.PrerequisiteChain("d")
	s.Require().NoError(err)
	s.Equal([]string{"d"}, chain)

	_, err = s.graph.PrerequisiteChain("zzz")
	s.True(errors.Is(err, errors.ErrQuestNotFound))
}

func (s *GraphTestSuite) TestPrerequisiteChainDetectsCycle() {
	g := quest.NewGraph(map[string]*entities.QuestDefinition{
		"x": {ID: "x", Title: "X", RequiredLevel: 1, Prerequisite: "y"},
		"y": {ID: "y", Title: "Y", RequiredLevel: 1, Prerequisite: "z"},
		"z": {ID: "z", Title: "Z", RequiredLevel: 1, Prerequisite: "x"},
	})

	_, err := g.PrerequisiteChain("x")
	s.True(errors.IsDataLoss(err))
	s.True(errors.IsDataLoss(g.Validate()))
}

func (s *GraphTestSuite) TestValidate() {
	s.NoError(s.graph.Validate())

	dangling := catalogue()
	dangling["e"] = &entities.QuestDefinition{ID: "e", Title: "E", RequiredLevel: 1, Prerequisite: "ghost"}
	err := quest.NewGraph(dangling).Validate()
	s.True(errors.Is(err, errors.ErrQuestNotFound))

	invalid := catalogue()
	invalid["f"] = &entities.QuestDefinition{ID: "f", RequiredLevel: 0}
	s.True(errors.IsInvalidArgument(quest.NewGraph(invalid).Validate()))
}

func (s *GraphTestSuite) TestStatistics() {
	s.Equal(0.0, s.graph.CompletionPercentage(s.character))

	s.character.CompletedQuests = []string{"a", "b", "stale"}
	s.Equal(50.0, s.graph.CompletionPercentage(s.character))

	totals := s.graph.TotalRewards(s.character)
	s.Equal(150, totals.XP)
	s.Equal(60, totals.Gold)

	s.Len(s.graph.CompletedQuests(s.character), 2)

	empty := quest.NewGraph(nil)
	s.Equal(0.0, empty.CompletionPercentage(s.character))
}

func (s *GraphTestSuite) TestAvailableAndByLevel() {
	ids := func(defs []*entities.QuestDefinition) []string {
		out := make([]string, len(defs))
		for i, d := range defs {
			out[i] = d.ID
		}
		return out
	}

	s.Equal([]string{"a", "d"}, ids(s.graph.Available(s.character)))

	s.Require().NoError(s.graph.Accept(s.character, "d"))
	s.Equal([]string{"a"}, ids(s.graph.Available(s.character)))
	s.Equal([]string{"d"}, ids(s.graph.ActiveQuests(s.character)))

	s.Equal([]string{"c"}, ids(s.graph.QuestsByLevel(2, 5)))
	s.Equal([]string{"a", "b", "d"}, ids(s.graph.QuestsByLevel(1, 1)))
}
