package quest_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/quest"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	repo         characterrepo.Repository
	published    []string
	orchestrator quest.Service
	hero         *entities.Character
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = characterrepo.NewInMemory(nil)
	s.published = nil

	bus := events.NewBus()
	for _, t := range []string{
		gameevents.QuestAccepted, gameevents.QuestCompleted,
		gameevents.QuestAbandoned, gameevents.CharacterLeveledUp,
	} {
		bus.SubscribeFunc(t, 0, func(_ context.Context, e events.Event) error {
			s.published = append(s.published, e.Type())
			return nil
		})
	}

	var err error
	s.orchestrator, err = quest.NewOrchestrator(&quest.Config{
		CharacterRepo: s.repo,
		Catalog:       testutils.CreateTestCatalog(),
		EventBus:      bus,
	})
	s.Require().NoError(err)

	out, err := s.repo.Create(s.ctx, characterrepo.CreateInput{
		Character: testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior),
	})
	s.Require().NoError(err)
	s.hero = out.Character
}

func (s *OrchestratorTestSuite) accept(id string) error {
	_, err := s.orchestrator.AcceptQuest(s.ctx, &quest.AcceptQuestInput{CharacterID: s.hero.ID, QuestID: id})
	return err
}

func (s *OrchestratorTestSuite) complete(id string) (*quest.CompleteQuestOutput, error) {
	return s.orchestrator.CompleteQuest(s.ctx, &quest.CompleteQuestInput{CharacterID: s.hero.ID, QuestID: id})
}

func (s *OrchestratorTestSuite) TestQuestChainProgression() {
	s.True(errors.Is(s.accept(testutils.QuestGoblins), errors.ErrRequirementsNotMet))

	s.Require().NoError(s.accept(testutils.QuestFirstSteps))
	first, err := s.complete(testutils.QuestFirstSteps)
	s.Require().NoError(err)
	s.Equal(0, first.Reward.LevelsGained)
	s.Equal(120, first.Character.Gold)

	s.Require().NoError(s.accept(testutils.QuestGoblins))
	second, err := s.complete(testutils.QuestGoblins)
	s.Require().NoError(err)
	s.Equal(1, second.Reward.LevelsGained)
	s.Equal(2, second.Character.Level)
	s.Equal(70, second.Character.Experience)
	s.Equal(160, second.Character.Gold)

	s.Equal([]string{
		gameevents.QuestAccepted, gameevents.QuestCompleted,
		gameevents.QuestAccepted, gameevents.QuestCompleted, gameevents.CharacterLeveledUp,
	}, s.published)

	log, err := s.orchestrator.GetQuestLog(s.ctx, &quest.GetQuestLogInput{CharacterID: s.hero.ID})
	s.Require().NoError(err)
	s.Empty(log.Available)
	s.Empty(log.Active)
	s.Len(log.Completed, 2)
	s.InDelta(100.0, log.CompletionPercentage, 0.001)
	s.Equal(170, log.Totals.XP)
	s.Equal(60, log.Totals.Gold)
}

func (s *OrchestratorTestSuite) TestAcceptFailuresLeaveStateAlone() {
	s.True(errors.Is(s.accept("ghost"), errors.ErrQuestNotFound))

	s.Require().NoError(s.accept(testutils.QuestFirstSteps))
	s.True(errors.Is(s.accept(testutils.QuestFirstSteps), errors.ErrAlreadyActive))

	got, err := s.repo.Get(s.ctx, characterrepo.GetInput{ID: s.hero.ID})
	s.Require().NoError(err)
	s.Equal([]string{testutils.QuestFirstSteps}, got.Character.ActiveQuests)
	s.Equal([]string{gameevents.QuestAccepted}, s.published)
}

func (s *OrchestratorTestSuite) TestCompleteRequiresActive() {
	_, err := s.complete(testutils.QuestFirstSteps)
	s.True(errors.Is(err, errors.ErrNotActive))

	_, err = s.complete("ghost")
	s.True(errors.Is(err, errors.ErrQuestNotFound))
}

func (s *OrchestratorTestSuite) TestDeadCharacterCannotComplete() {
	s.Require().NoError(s.accept(testutils.QuestFirstSteps))

	got, err := s.repo.Get(s.ctx, characterrepo.GetInput{ID: s.hero.ID})
	s.Require().NoError(err)
	got.Character.Health = 0
	_, err = s.repo.Update(s.ctx, characterrepo.UpdateInput{Character: got.Character})
	s.Require().NoError(err)

	_, err = s.complete(testutils.QuestFirstSteps)
	s.True(errors.Is(err, errors.ErrCharacterDead))

	after, err := s.repo.Get(s.ctx, characterrepo.GetInput{ID: s.hero.ID})
	s.Require().NoError(err)
	s.Equal([]string{testutils.QuestFirstSteps}, after.Character.ActiveQuests)
	s.Empty(after.Character.CompletedQuests)
}

func (s *OrchestratorTestSuite) TestAbandon() {
	_, err := s.orchestrator.AbandonQuest(s.ctx, &quest.AbandonQuestInput{CharacterID: s.hero.ID, QuestID: testutils.QuestFirstSteps})
	s.True(errors.Is(err, errors.ErrNotActive))

	s.Require().NoError(s.accept(testutils.QuestFirstSteps))
	out, err := s.orchestrator.AbandonQuest(s.ctx, &quest.AbandonQuestInput{CharacterID: s.hero.ID, QuestID: testutils.QuestFirstSteps})
	s.Require().NoError(err)
	s.Empty(out.Character.ActiveQuests)

	// abandoned quests can be picked up again
	s.Require().NoError(s.accept(testutils.QuestFirstSteps))
}

func (s *OrchestratorTestSuite) TestQuestChain() {
	out, err := s.orchestrator.GetQuestChain(s.ctx, &quest.GetQuestChainInput{QuestID: testutils.QuestGoblins})
	s.Require().NoError(err)
	s.Require().Len(out.Chain, 2)
	s.Equal(testutils.QuestFirstSteps, out.Chain[0].ID)
	s.Equal(testutils.QuestGoblins, out.Chain[1].ID)
}

func (s *OrchestratorTestSuite) TestRejectsCyclicCatalogue() {
	quests := testutils.CreateTestQuests()
	quests[testutils.QuestFirstSteps].Prerequisite = testutils.QuestGoblins

	_, err := quest.NewOrchestrator(&quest.Config{
		CharacterRepo: s.repo,
		Catalog:       &catalog.Catalog{Quests: quests, Items: testutils.CreateTestItems()},
		EventBus:      events.NewBus(),
	})
	s.True(errors.IsDataLoss(err))
}
