package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/initiative"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots"
)

// app holds the wired dependencies for one CLI invocation
type app struct {
	cfg     *config.Config
	store   combat.Store
	factory initiative.Factory
	bus     events.EventBus

	closers []func() error
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if storeFlag != "" {
		cfg.Store = config.StoreKind(storeFlag)
	}
	if sessionFlag != "" {
		cfg.SessionID = sessionFlag
	}
	if redisAddrFlag != "" {
		cfg.RedisAddr = redisAddrFlag
	}
	if sqlitePathFlag != "" {
		cfg.SQLitePath = sqlitePathFlag
	}
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	a := &app{cfg: cfg, bus: events.NewBus()}

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	a.store, err = combat.NewStore(&combat.StoreConfig{
		Repository: repo,
		SessionID:  cfg.SessionID,
		EventBus:   a.bus,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create combat store")
	}

	var roller dice.Roller = dice.DefaultRoller
	if cfg.Seed != 0 {
		roller = rpgtoolkit.NewSeededRoller(cfg.Seed)
	}
	a.factory, err = initiative.NewFactory(&initiative.Config{DiceRoller: roller})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create entry factory")
	}

	return a, nil
}

func (a *app) openRepository(ctx context.Context) (snapshots.Repository, error) {
	switch a.cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(a.cfg.RedisAddr, &redis.Options{
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)

		return snapshots.NewRedis(&snapshots.RedisConfig{
			Client: client,
			TTL:    a.cfg.SnapshotTTL,
		})

	case config.StoreSQLite:
		db, err := snapshots.OpenSQLite(a.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		return snapshots.NewSQLite(ctx, &snapshots.SQLiteConfig{
			DB:    db,
			Clock: clock.New(),
		})

	default:
		slog.Warn("Memory store selected, combat will not outlive this command",
			"session_id", a.cfg.SessionID,
		)
		return snapshots.NewInMemory(), nil
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

// dispatch applies the intent and prints the resulting state
func (a *app) dispatch(ctx context.Context, out printer, intent combat.Intent) error {
	res, err := a.store.Dispatch(ctx, &combat.DispatchInput{Intent: intent})
	if err != nil {
		return errors.Wrapf(err, "failed to apply %s", intent.Name())
	}

	if !res.Changed {
		out.notef("Nothing to do for %s", intent.Name())
	}
	return out.state(res.State)
}

// withApp wires the app for a command and tears it down afterwards
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app, out printer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	out := newPrinter(cmd.OutOrStdout(), jsonOutput)
	if !jsonOutput {
		out.announce(a.bus)
	}

	if _, err := a.store.Hydrate(ctx); err != nil {
		return errors.Wrap(err, "failed to load combat")
	}
	return fn(ctx, a, out)
}
