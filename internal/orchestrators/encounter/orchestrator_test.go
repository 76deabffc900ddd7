package encounter_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/gameevents"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/roller"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog"
	battlelogmock "github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog/mock"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-chronicles/internal/rules/combat"
	"github.com/KirkDiggler/rpg-chronicles/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx           context.Context
	characterRepo characterrepo.Repository
	encounterRepo *encounters.InMemoryRepository
	roller        *roller.Scripted
	battleLog     battlelog.Repository
	published     []string
	orchestrator  encounter.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.characterRepo = characterrepo.NewInMemory(nil)
	s.encounterRepo = encounters.NewInMemory()
	s.roller = roller.NewScripted(1)
	s.battleLog = battlelog.NewInMemory(nil)
	s.published = nil

	bus := events.NewBus()
	for _, t := range []string{gameevents.EncounterStarted, gameevents.EncounterEnded, gameevents.CharacterLeveledUp} {
		bus.SubscribeFunc(t, 0, func(_ context.Context, e events.Event) error {
			s.published = append(s.published, e.Type())
			return nil
		})
	}

	var err error
	s.orchestrator, err = encounter.NewOrchestrator(&encounter.Config{
		CharacterRepo: s.characterRepo,
		EncounterRepo: s.encounterRepo,
		IDGenerator:   idgen.NewSequential("enc"),
		Roller:        s.roller,
		EventBus:      bus,
		BattleLog:     s.battleLog,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) store(c *entities.Character) {
	_, err := s.characterRepo.Create(s.ctx, characterrepo.CreateInput{Character: c})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) start(characterID, enemy string) string {
	out, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		CharacterID: characterID,
		EnemyType:   enemy,
	})
	s.Require().NoError(err)
	return out.EncounterID
}

func (s *OrchestratorTestSuite) act(id, action string) *encounter.TakeActionOutput {
	out, err := s.orchestrator.TakeAction(s.ctx, &encounter.TakeActionInput{EncounterID: id, Action: action})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := encounter.NewOrchestrator(&encounter.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid config")
}

func (s *OrchestratorTestSuite) TestWarriorBeatsGoblin() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))
	id := s.start("hero", "")

	var last *encounter.TakeActionOutput
	for i := 0; i < 4; i++ {
		last = s.act(id, "attack")
	}

	s.True(last.Ended)
	s.Equal(combat.StatePlayerWon, last.Result.State)
	s.Equal(combat.Reward{XP: 25, Gold: 10}, last.Reward)
	s.Equal(105, last.Character.Health)
	s.Equal(110, last.Character.Gold)
	s.Equal(25, last.Character.Experience)

	stored, err := s.characterRepo.Get(s.ctx, characterrepo.GetInput{ID: "hero"})
	s.Require().NoError(err)
	s.Equal(105, stored.Character.Health)

	_, err = s.orchestrator.GetEncounter(s.ctx, &encounter.GetEncounterInput{EncounterID: id})
	s.True(errors.IsNotFound(err))

	s.Equal([]string{gameevents.EncounterStarted, gameevents.EncounterEnded}, s.published)
}

func (s *OrchestratorTestSuite) TestVictoryLevelsUp() {
	hero := testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior)
	hero.Experience = 90
	s.store(hero)

	id := s.start("hero", combat.EnemyGoblin)
	var last *encounter.TakeActionOutput
	for i := 0; i < 4; i++ {
		last = s.act(id, "a")
	}

	s.Equal(1, last.LevelsGained)
	s.Equal(2, last.Character.Level)
	s.Equal(15, last.Character.Experience)
	s.Contains(s.published, gameevents.CharacterLeveledUp)
}

func (s *OrchestratorTestSuite) TestMageFallsToOrc() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeMage))
	id := s.start("hero", combat.EnemyOrc)

	var last *encounter.TakeActionOutput
	for i := 0; i < 8; i++ {
		last = s.act(id, "attack")
	}

	s.True(last.Ended)
	s.Equal(combat.StateEnemyWon, last.Result.State)
	s.Equal(combat.Reward{}, last.Reward)
	s.Equal(0, last.Character.Health)
	s.Equal(40, last.Enemy.Health)

	_, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{CharacterID: "hero"})
	s.True(errors.Is(err, errors.ErrCharacterDead))
}

func (s *OrchestratorTestSuite) TestEscape() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeRogue))
	id := s.start("hero", combat.EnemyDragon)

	out := s.act(id, "run")
	s.True(out.Ended)
	s.True(out.Result.Escaped)
	s.Equal(90, out.Character.Health)
	s.Equal(entities.StartingGold, out.Character.Gold)
}

func (s *OrchestratorTestSuite) TestOneEncounterPerCharacter() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeCleric))
	s.start("hero", combat.EnemyGoblin)

	_, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{CharacterID: "hero"})
	s.True(errors.IsInvalidState(err))
}

func (s *OrchestratorTestSuite) TestStoredCharacterCarriesIntoFight() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))
	id := s.start("hero", combat.EnemyGoblin)

	first := s.act(id, "attack")
	s.Equal(115, first.Character.Health)

	// healed outside the fight between turns
	first.Character.Health = 120
	_, err := s.characterRepo.Update(s.ctx, characterrepo.UpdateInput{Character: first.Character})
	s.Require().NoError(err)

	second := s.act(id, "attack")
	s.Equal(115, second.Character.Health)

	view, err := s.orchestrator.GetEncounter(s.ctx, &encounter.GetEncounterInput{EncounterID: id})
	s.Require().NoError(err)
	s.Equal(2, view.Turn)
	s.Equal(combat.StateActive, view.State)
	s.Equal(24, view.Enemy.Health)
}

func (s *OrchestratorTestSuite) TestInvalidAction() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))
	id := s.start("hero", combat.EnemyGoblin)

	out := s.act(id, "dance")
	s.True(out.Result.Invalid)
	s.Equal(50, out.Enemy.Health)
	s.Equal(115, out.Character.Health)
}

func (s *OrchestratorTestSuite) TestUnknownEnemyAndEncounter() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))

	_, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{CharacterID: "hero", EnemyType: "kraken"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.TakeAction(s.ctx, &encounter.TakeActionInput{EncounterID: "nope", Action: "attack"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestFinishedFightIsRecorded() {
	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))
	id := s.start("hero", combat.EnemyGoblin)

	var turnLines int
	for i := 0; i < 4; i++ {
		turnLines += len(s.act(id, "attack").Result.Log)
	}

	out, err := s.orchestrator.GetBattleHistory(s.ctx, &encounter.GetBattleHistoryInput{CharacterID: "hero"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)

	record := out.Records[0]
	s.Equal(id, record.EncounterID)
	s.Equal(string(combat.StatePlayerWon), record.Outcome)
	s.Equal(4, record.Turns)
	s.Equal(25, record.XP)
	s.Equal(10, record.Gold)
	s.Len(record.Log, turnLines)
}

func (s *OrchestratorTestSuite) TestBattleHistoryFailures() {
	_, err := s.orchestrator.GetBattleHistory(s.ctx, &encounter.GetBattleHistoryInput{CharacterID: "ghost"})
	s.True(errors.IsNotFound(err))

	s.store(testutils.CreateTestCharacter("hero", entities.ArchetypeWarrior))
	_, err = s.orchestrator.GetBattleHistory(s.ctx, &encounter.GetBattleHistoryInput{CharacterID: "hero", Limit: -1})
	s.True(errors.IsInvalidArgument(err))

	out, err := s.orchestrator.GetBattleHistory(s.ctx, &encounter.GetBattleHistoryInput{CharacterID: "hero"})
	s.Require().NoError(err)
	s.Empty(out.Records)
}

func TestBattleLogFailureDoesNotFailTurn(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	log := battlelogmock.NewMockRepository(ctrl)
	log.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("redis down"))

	characters := characterrepo.NewInMemory(nil)
	_, err := characters.Create(ctx, characterrepo.CreateInput{
		Character: testutils.CreateTestCharacter("hero", entities.ArchetypeRogue),
	})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := encounter.NewOrchestrator(&encounter.Config{
		CharacterRepo: characters,
		EncounterRepo: encounters.NewInMemory(),
		IDGenerator:   idgen.NewSequential("enc"),
		Roller:        roller.NewScripted(1),
		EventBus:      events.NewBus(),
		BattleLog:     log,
	})
	if err != nil {
		t.Fatal(err)
	}

	started, err := svc.StartEncounter(ctx, &encounter.StartEncounterInput{CharacterID: "hero", EnemyType: combat.EnemyDragon})
	if err != nil {
		t.Fatal(err)
	}
	out, err := svc.TakeAction(ctx, &encounter.TakeActionInput{EncounterID: started.EncounterID, Action: "run"})
	if err != nil {
		t.Fatalf("expected turn to succeed, got %v", err)
	}
	if !out.Ended {
		t.Fatal("expected escape to end the fight")
	}
}
