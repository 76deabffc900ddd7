package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-chronicles/internal/entities"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/testutils"
)

// RepositoryTestSuite runs the same contract against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(clock.Clock) character.Repository
	clock   *clock.Fixed
	repo    character.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(c clock.Clock) character.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := character.NewRedis(&character.RedisConfig{Client: client, Clock: c})
			if err != nil {
				t.Fatal(err)
			}
			return repo
		},
	})
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: character.NewInMemory,
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &clock.Fixed{At: time.Unix(1700000000, 0)}
	s.repo = s.newRepo(s.clock)
}

func (s *RepositoryTestSuite) create(id string) *entities.Character {
	out, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: testutils.CreateTestCharacter(id, entities.ArchetypeWarrior),
	})
	s.Require().NoError(err)
	return out.Character
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	c := testutils.CreateTestCharacter("char-1", entities.ArchetypeMage)
	c.Inventory = []string{testutils.ItemStaff, testutils.ItemPotion}
	c.ActiveQuests = []string{testutils.QuestFirstSteps}
	c.SetOccupant(entities.SlotWeapon, &entities.ItemDefinition{
		ID: "wand", Name: "Wand", Type: entities.ItemTypeWeapon,
		Effect: entities.StatDelta{Stat: entities.StatMagic, Value: 3},
	})

	created, err := s.repo.Create(s.ctx, character.CreateInput{Character: c})
	s.Require().NoError(err)
	s.Equal(s.clock.At.Unix(), created.Character.CreatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Equal(created.Character, got.Character)
	s.Equal("wand", got.Character.EquippedWeapon)
	s.Equal(3, got.Character.Equipped[entities.SlotWeapon].Effect.Value)
}

func (s *RepositoryTestSuite) TestCreateDuplicate() {
	s.create("char-1")

	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: testutils.CreateTestCharacter("char-1", entities.ArchetypeRogue),
	})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: testutils.CreateTestCharacter("", entities.ArchetypeRogue),
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, character.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "ghost"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUpdate() {
	created := s.create("char-1")

	s.clock.At = s.clock.At.Add(time.Hour)
	created.Gold = 5
	created.Level = 3

	updated, err := s.repo.Update(s.ctx, character.UpdateInput{Character: created})
	s.Require().NoError(err)
	s.Equal(created.CreatedAt, updated.Character.CreatedAt)
	s.Equal(s.clock.At.Unix(), updated.Character.UpdatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Equal(5, got.Character.Gold)
	s.Equal(3, got.Character.Level)
}

func (s *RepositoryTestSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{
		Character: testutils.CreateTestCharacter("ghost", entities.ArchetypeCleric),
	})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestStoredCopyIsIsolated() {
	c := s.create("char-1")
	c.Inventory = append(c.Inventory, "smuggled")

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char-1"})
	s.Require().NoError(err)
	s.Empty(got.Character.Inventory)
}

func (s *RepositoryTestSuite) TestDeleteAndList() {
	s.create("b")
	s.create("a")
	s.create("c")

	_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: "b"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: "b"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 2)
	s.Equal("a", out.Characters[0].ID)
	s.Equal("c", out.Characters[1].ID)
}

func TestRedisListCleansStaleIndex(t *testing.T) {
	client, mr := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		_, _ = m.SAdd("character:index", "ghost")
	})
	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	out, err := repo.List(context.Background(), character.ListInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Characters) != 0 {
		t.Fatalf("expected no characters, got %d", len(out.Characters))
	}
	if mr.Exists("character:index") {
		members, _ := mr.Members("character:index")
		t.Fatalf("stale ids left in index: %v", members)
	}
}

func TestRedisCorruptRecord(t *testing.T) {
	client, _ := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		_ = m.Set("character:bad", "{not json")
	})
	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.Get(context.Background(), character.GetInput{ID: "bad"})
	if !errors.IsDataLoss(err) {
		t.Fatalf("expected data loss, got %v", err)
	}
}

func TestNewRedisRequiresClient(t *testing.T) {
	_, err := character.NewRedis(&character.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = character.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
