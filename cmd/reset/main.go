package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/bootstrap"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

// reset runs the daily attendance reset once against the configured store.
// Use it to recover a missed midnight run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName+"-reset", cfg.Version, cfg.Environment, false))

	econ, err := config.LoadEconomy(cfg.EconomyConfigPath, cfg.EconomySchemaPath)
	if err != nil {
		log.Fatalf("Failed to load economy tables: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open account store: %v", err)
	}
	defer store.Close()

	pool := worker.NewPool(cfg.ResetWorkers, cfg.ResetWorkers*worker.QueueSizePerWorker)
	pool.Start(ctx)
	defer pool.Stop()

	svc, err := bootstrap.InitializeServices(bootstrap.ServiceDependencies{
		Store:   store.Accounts,
		Economy: econ,
		Cache:   account.CacheConfig{},
		Bus:     bootstrap.InitializeEventSystem(),
		Pool:    pool,
	})
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	result, err := svc.DailyResetWorker.RunOnce(ctx)
	if err != nil {
		log.Fatalf("Daily reset failed: %v", err)
	}

	log.Printf("✅ Daily reset for %s complete: %d accounts reset, %d failed (%d jobs run)\n",
		result.Date, result.AccountsReset, result.Failed, pool.Processed())
	if result.Failed > 0 {
		os.Exit(1)
	}
}
