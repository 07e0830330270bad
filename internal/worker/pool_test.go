package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/testing/leaktest"
)

func TestPool_ProcessesEveryJob(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed atomic.Int32
	var wg sync.WaitGroup
	pool := NewPool(3, 4)
	pool.Start(context.Background())

	for i := 0; i < 20; i++ {
		wg.Add(1)
		require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
			defer wg.Done()
			executed.Add(1)
			return nil
		})))
	}
	wg.Wait()
	pool.Stop()

	assert.Equal(t, int32(20), executed.Load())
	checker.Check(1)
}

func TestPool_JobErrorDoesNotStopWorker(t *testing.T) {
	pool := NewPool(1, 2)
	pool.Start(context.Background())
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		return errors.New("boom")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		close(done)
		return nil
	})))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second job never ran")
	}
}

func TestPool_PanickingJobCountsAsFailed(t *testing.T) {
	pool := NewPool(1, 2)
	pool.Start(context.Background())
	defer pool.Stop()

	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		panic("corrupt account row")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		return nil
	})))

	assert.Eventually(t, func() bool { return pool.Processed() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), pool.Failed())
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error { return nil }))
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_EnqueueHonorsContext(t *testing.T) {
	// Not started, so the single slot stays full
	pool := NewPool(1, 1)
	defer pool.Stop()
	noop := JobFunc(func(ctx context.Context) error { return nil })
	require.NoError(t, pool.Enqueue(context.Background(), noop))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Enqueue(ctx, noop), context.DeadlineExceeded)
}
