package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/GuildPoints_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// testcontainers panics when Docker is missing
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("guildpoints"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", DefaultPoolConfig(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestParsePoolConfig(t *testing.T) {
	const conn = "postgres://gp:pw@db:5432/guildpoints?sslmode=disable"

	t.Run("applies sizing", func(t *testing.T) {
		pc, err := parsePoolConfig(conn, DefaultPoolConfig(8))
		require.NoError(t, err)

		assert.Equal(t, int32(8), pc.MaxConns)
		assert.Equal(t, int32(DefaultMinConnections), pc.MinConns)
		assert.Equal(t, DefaultMaxConnIdle, pc.MaxConnIdleTime)
		assert.Equal(t, DefaultMaxConnLife, pc.MaxConnLifetime)
		assert.Equal(t, "db", pc.ConnConfig.Host)
		assert.Equal(t, "guildpoints", pc.ConnConfig.Database)
	})

	t.Run("min conns never exceeds max", func(t *testing.T) {
		pc, err := parsePoolConfig(conn, PoolConfig{MaxConns: 1})
		require.NoError(t, err)
		assert.Equal(t, int32(1), pc.MinConns)
	})

	t.Run("zero fields keep pgx defaults", func(t *testing.T) {
		base, err := parsePoolConfig(conn, PoolConfig{})
		require.NoError(t, err)
		assert.Greater(t, base.MaxConns, int32(0))
		assert.NotZero(t, base.MaxConnLifetime)
	})
}

func TestMigrate_CreatesAccountsTableOnce(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, DefaultPoolConfig(4))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run has nothing to apply")

	var exists bool
	err = pool.QueryRow(ctx, "SELECT to_regclass('public.accounts') IS NOT NULL").Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPool_ConnectionsReleased(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, DefaultPoolConfig(5))
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 10; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err, "acquire %d", i)

		var result int
		assert.NoError(t, conn.QueryRow(ctx, "SELECT 1").Scan(&result))
		assert.Equal(t, 1, result)
		conn.Release()
	}

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(context.Background(), testDBConnString, DefaultPoolConfig(10))
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
	checker.Check(2)
}
