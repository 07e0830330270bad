package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/database"
	"github.com/osse101/GuildPoints_Go/internal/database/postgres"
	"github.com/osse101/GuildPoints_Go/internal/database/redisstore"
	"github.com/osse101/GuildPoints_Go/internal/repository"
)

// Store is the account repository selected by STORE_DRIVER together with
// the function that releases its connections.
type Store struct {
	Accounts repository.Account
	Driver   string
	close    func()
}

// Close releases the store's connections
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects the configured account store. PostgreSQL stores are
// migrated before use.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultPoolConfig(cfg.DBMaxConns))
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Store{Accounts: postgres.NewAccountRepository(pool), Driver: cfg.StoreDriver, close: pool.Close}, nil

	case config.StoreDriverRedis:
		rdb, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "addr", cfg.RedisAddr)
		return &Store{
			Accounts: redisstore.NewAccountStore(rdb, redisstore.DefaultKeyPrefix),
			Driver:   cfg.StoreDriver,
			close:    func() { _ = rdb.Close() },
		}, nil

	case config.StoreDriverMemory:
		slog.Warn(LogMsgMemoryStore)
		return &Store{Accounts: account.NewFakeRepository(), Driver: cfg.StoreDriver}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
