package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/config"
	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/database"
	"github.com/osse101/DuckHunt_Go/internal/database/postgres"
	"github.com/osse101/DuckHunt_Go/internal/discord"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/server"
	"github.com/osse101/DuckHunt_Go/internal/shop"
	"github.com/osse101/DuckHunt_Go/internal/snapshot"
	"github.com/osse101/DuckHunt_Go/internal/spawning"
	"github.com/osse101/DuckHunt_Go/internal/worker"
)

const (
	dbMaxIdleTime   = 5 * time.Minute
	dbMaxLifetime   = 30 * time.Minute
	shutdownTimeout = 10 * time.Second

	sendWorkers   = 4
	sendQueueSize = 64
	sendTimeout   = 15 * time.Second
)

// storage bundles the repositories and, for postgres, the pool behind them.
type storage struct {
	channels repository.Channel
	players  repository.Player
	pool     database.Pool
	close    func()
}

// @title DuckHunt status API
// @version 1.0
// @description Read-only view of the live ducks, the world event and the spawn loop.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("DuckHunt stopped with error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	catalog, err := loadCatalog(cfg.ContentPath)
	if err != nil {
		return err
	}

	bot, err := discord.New(discord.Config{Token: cfg.DiscordToken, AppID: cfg.DiscordAppID})
	if err != nil {
		return err
	}
	messenger := discord.NewMessenger(bot.Session, cfg.LogChannelID)

	dice := ducks.SystemDice()
	events := spawning.NewEvents(dice, cfg.WorldEventOdds, cfg.EventPath)
	registry := ducks.NewRegistry()

	// Loop announcements go through the outbox so a slow channel never
	// holds up a tick.
	sendPool := worker.NewPool(sendWorkers, sendQueueSize, sendTimeout)
	sendPool.Start()
	outbox := spawning.NewOutbox(messenger, sendPool)
	spawner := ducks.NewSpawner(registry, outbox, catalog, dice, events, time.Now)
	gate := concurrency.NewLockManager()

	hunt := ducks.NewHunt(ducks.HuntDeps{
		Spawner:  spawner,
		Channels: store.channels,
		Players:  store.players,
		Catalog:  catalog,
		Dice:     dice,
		Events:   events,
		Gate:     gate,
		Prestige: ducks.DefaultPrestigeCurve(),
		Friends:  cfg.HugFriendIDs,
	})

	tasks := worker.NewTasks()
	shopService := shop.NewService(shop.Deps{
		Channels: store.channels,
		Players:  store.players,
		Spawner:  spawner,
		Sender:   messenger,
		Tasks:    tasks,
		Catalog:  catalog,
		Events:   events,
		Gate:     gate,
	})

	snapshots, err := snapshot.New(cfg.SnapshotPath, store.channels)
	if err != nil {
		return err
	}

	loop := spawning.New(spawning.Deps{
		Channels:  store.channels,
		Players:   store.players,
		Spawner:   spawner,
		Events:    events,
		Snapshots: snapshots,
		Status:    messenger,
		Outbox:    outbox,
		Gate:      gate,
		Catalog:   catalog,
		Dice:      dice,
		Settings: spawning.Settings{
			MaxSpawnsPerTick: cfg.MaxSpawnsPerTick,
			MaxLeavesPerTick: cfg.MaxLeavesPerTick,
			DriftWarn:        time.Duration(cfg.DriftWarnSeconds) * time.Second,
			DriftResync:      time.Duration(cfg.DriftResyncSeconds) * time.Second,
		},
	})

	srv := server.NewServer(cfg.HTTPPort, server.Deps{
		DB:     store.pool,
		Ducks:  registry,
		Events: events,
		Loop:   loop,
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Status server failed", "error", err)
		}
	}()

	bot.Deps = &discord.Deps{
		Hunt:     hunt,
		Shop:     shopService,
		Loop:     loop,
		Spawner:  spawner,
		Channels: store.channels,
		Players:  store.players,
		Catalog:  catalog,
	}
	bot.Registry.RegisterAll()
	if err := bot.Start(); err != nil {
		return err
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		// Commands registered by a previous run keep working.
		slog.Error("Failed to register commands", "error", err)
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	slog.Info("DuckHunt is running", "storage", cfg.Storage, "port", cfg.HTTPPort)
	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop taking interactions before the loop saves its snapshot.
	bot.Stop()
	err = <-loopErr
	if stopErr := sendPool.Stop(shutdownCtx); stopErr != nil {
		slog.Warn("Pending announcements were not delivered", "error", stopErr)
	}
	if shutdownErr := tasks.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("Pending tasks did not finish", "error", shutdownErr)
	}
	if stopErr := srv.Stop(shutdownCtx); stopErr != nil {
		slog.Warn("Status server shutdown failed", "error", stopErr)
	}
	return err
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("Using in-memory storage, profiles are lost on restart")
		return &storage{
			channels: repository.NewMemoryChannels(),
			players:  repository.NewMemoryPlayers(),
			close:    func() {},
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		channels: postgres.NewChannelRepository(pool),
		players:  postgres.NewPlayerRepository(pool),
		pool:     pool,
		close:    pool.Close,
	}, nil
}

func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	catalog, err := content.Load(path)
	if err != nil {
		return nil, errors.Join(errors.New("failed to load content catalog"), err)
	}
	return catalog, nil
}
