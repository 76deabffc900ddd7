package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/catalog"
	"github.com/KirkDiggler/rpg-chronicles/internal/config"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	charorch "github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-chronicles/internal/orchestrators/quest"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-chronicles/internal/pkg/roller"
	"github.com/KirkDiggler/rpg-chronicles/internal/redis"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/battlelog"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
	"github.com/KirkDiggler/rpg-chronicles/internal/repositories/encounters"
)

// app is the wired set of services a command works with
type app struct {
	catalog    *catalog.Catalog
	bus        events.EventBus
	characters charorch.Service
	quests     quest.Service
	encounters encounter.Service
	close      func()
}

// newApp wires repositories and orchestrators from cfg. Callers must call
// close when done.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	st, err := newStores(ctx, cfg, clk)
	if err != nil {
		return nil, err
	}
	repo, closeRepo := st.characters, st.close

	bus := events.NewBus()
	rng := newRoller(cfg)

	characters, err := charorch.NewOrchestrator(&charorch.Config{
		CharacterRepo: repo,
		Catalog:       cat,
		IDGenerator:   idgen.NewUUID("char"),
		EventBus:      bus,
	})
	if err != nil {
		closeRepo()
		return nil, err
	}

	quests, err := quest.NewOrchestrator(&quest.Config{
		CharacterRepo: repo,
		Catalog:       cat,
		EventBus:      bus,
	})
	if err != nil {
		closeRepo()
		return nil, err
	}

	fights, err := encounter.NewOrchestrator(&encounter.Config{
		CharacterRepo: repo,
		EncounterRepo: encounters.NewInMemory(),
		IDGenerator:   idgen.NewUUID("enc"),
		Roller:        rng,
		EventBus:      bus,
		Clock:         clk,
		BattleLog:     st.battleLog,
	})
	if err != nil {
		closeRepo()
		return nil, err
	}

	return &app{
		catalog:    cat,
		bus:        bus,
		characters: characters,
		quests:     quests,
		encounters: fights,
		close:      closeRepo,
	}, nil
}

// loadCatalog reads the configured data files, falling back to the built-in
// catalogue when neither file exists
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.QuestPath(), cfg.ItemPath())
	if err == nil {
		return cat, nil
	}
	if !errors.IsNotFound(err) || cfg.QuestFile != "" || cfg.ItemFile != "" {
		return nil, err
	}

	slog.Debug("Data files not found, using built-in catalogue",
		"data_dir", cfg.DataDir,
		"error", err,
	)
	return catalog.Defaults()
}

// stores are the persistent repositories behind the app
type stores struct {
	characters characterrepo.Repository
	battleLog  battlelog.Repository
	close      func()
}

func newStores(ctx context.Context, cfg *config.Config, clk clock.Clock) (*stores, error) {
	if cfg.RedisAddr == "" {
		slog.Debug("No Redis address configured, characters are kept in memory")
		return &stores{
			characters: characterrepo.NewInMemory(clk),
			battleLog:  battlelog.NewInMemory(clk),
			close:      func() {},
		}, nil
	}

	client, err := redis.Connect(ctx, cfg.RedisAddr, &redis.Options{
		PoolSize:        4,
		ConnMaxIdleTime: 5 * time.Minute,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to redis")
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	characters, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client: client,
		Clock:  clk,
	})
	if err != nil {
		closeClient()
		return nil, err
	}

	history, err := battlelog.NewRedisRepository(&battlelog.Config{
		Client: client,
		Clock:  clk,
	})
	if err != nil {
		closeClient()
		return nil, err
	}

	return &stores{characters: characters, battleLog: history, close: closeClient}, nil
}

func newRoller(cfg *config.Config) dice.Roller {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	slog.Debug("Dice seeded", "seed", s)
	return roller.NewSeeded(s)
}

// withApp builds the app for one command run
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
