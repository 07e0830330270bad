package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/bootstrap"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/scheduler"
	"github.com/osse101/GuildPoints_Go/internal/server"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

// @title GuildPoints API
// @version 1.0
// @description Guild point economy: attendance, wagers, coupons and the point shop.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("GuildPoints API failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings(cfg.StoreDriver)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	econ, err := config.LoadEconomy(cfg.EconomyConfigPath, cfg.EconomySchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load economy tables: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.ResetWorkers, cfg.ResetWorkers*worker.QueueSizePerWorker)
	pool.Start(ctx)

	svc, err := bootstrap.InitializeServices(bootstrap.ServiceDependencies{
		Store:   store.Accounts,
		Economy: econ,
		Cache:   account.CacheConfig{Size: cfg.AccountCacheSize(), TTL: cfg.CacheTTL},
		Bus:     bootstrap.InitializeEventSystem(),
		Pool:    pool,
	})
	if err != nil {
		pool.Stop()
		store.Close()
		return err
	}

	sched, err := scheduler.New(ctx)
	if err != nil {
		pool.Stop()
		store.Close()
		return err
	}
	if cfg.DailyResetEnabled {
		if err := sched.Daily(scheduler.JobDailyReset, func(ctx context.Context) error {
			_, err := svc.DailyResetWorker.RunOnce(ctx)
			return err
		}); err != nil {
			return err
		}
	}
	sched.Start()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, svc.Services)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:           srv,
		Scheduler:        sched,
		DailyResetWorker: svc.DailyResetWorker,
		Pool:             pool,
		Store:            store,
	})

	return err
}
