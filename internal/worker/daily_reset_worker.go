package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// ErrResetInProgress is returned when a reset is requested while one runs
var ErrResetInProgress = errors.New("daily reset already in progress")

// AccountLister pages through every stored account id
type AccountLister interface {
	ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error)
}

// AccountResetter clears the daily state of one account
type AccountResetter interface {
	ResetAccount(ctx context.Context, userID string) (bool, error)
}

// DailyResetWorker clears attendance and daily earnings for every account.
// Each account is reset as its own job, so no account lock is held for
// longer than its own write.
type DailyResetWorker struct {
	accounts AccountLister
	resetter AccountResetter
	pool     *Pool
	bus      event.Bus
	clock    clock.Clock
	pageSize int

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewDailyResetWorker creates a DailyResetWorker. The pool must be started
// by the caller; bus may be nil.
func NewDailyResetWorker(accounts AccountLister, resetter AccountResetter, pool *Pool, bus event.Bus, clk clock.Clock) *DailyResetWorker {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &DailyResetWorker{
		accounts: accounts,
		resetter: resetter,
		pool:     pool,
		bus:      bus,
		clock:    clk,
		pageSize: DefaultResetPageSize,
	}
}

// WithPageSize sets how many account ids are loaded per page
func (w *DailyResetWorker) WithPageSize(n int) *DailyResetWorker {
	if n > 0 {
		w.pageSize = n
	}
	return w
}

type resetJob struct {
	userID   string
	resetter AccountResetter
	reset    *atomic.Int64
	failed   *atomic.Int64
	done     *sync.WaitGroup
}

func (j *resetJob) Process(ctx context.Context) error {
	defer j.done.Done()

	changed, err := j.resetter.ResetAccount(ctx, j.userID)
	if err != nil {
		j.failed.Add(1)
		logger.FromContext(ctx).Warn(LogMsgDailyResetAccountFailed, "user_id", j.userID, "error", err)
		return nil
	}
	if changed {
		j.reset.Add(1)
	}
	return nil
}

// RunOnce resets every account once and waits for all of it to finish.
// Failures on single accounts are counted, not fatal; a failure to list
// accounts stops the run and returns the partial result with the error.
func (w *DailyResetWorker) RunOnce(ctx context.Context) (*domain.DailyResetResult, error) {
	log := logger.FromContext(ctx)
	if !w.running.CompareAndSwap(false, true) {
		log.Warn(LogMsgDailyResetAlreadyRunning)
		return nil, ErrResetInProgress
	}
	defer w.running.Store(false)

	w.wg.Add(1)
	defer w.wg.Done()

	result := &domain.DailyResetResult{Date: domain.DayKey(w.clock.Now())}
	log.Info(LogMsgDailyResetStarting, "date", result.Date)

	var reset, failed atomic.Int64
	err := w.eachPage(ctx, func(ids []string) error {
		var page sync.WaitGroup
		for _, id := range ids {
			page.Add(1)
			job := &resetJob{userID: id, resetter: w.resetter, reset: &reset, failed: &failed, done: &page}
			if err := w.pool.Enqueue(ctx, job); err != nil {
				return fmt.Errorf("failed to enqueue reset for %s: %w", id, err)
			}
		}
		page.Wait()
		return nil
	})

	result.AccountsReset = int(reset.Load())
	result.Failed = int(failed.Load())

	if err != nil {
		log.Error(LogMsgDailyResetFailed, "date", result.Date, "accounts_reset", result.AccountsReset, "error", err)
		return result, err
	}

	log.Info(LogMsgDailyResetCompleted, "date", result.Date, "accounts_reset", result.AccountsReset, "failed", result.Failed)
	event.PublishAll(ctx, w.bus, event.New(event.DailyResetCompleted, event.DailyResetPayloadV1{
		Date:          result.Date,
		AccountsReset: result.AccountsReset,
		Failed:        result.Failed,
	}))
	return result, nil
}

func (w *DailyResetWorker) eachPage(ctx context.Context, fn func(ids []string) error) error {
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ids, err := w.accounts.ListAccountIDs(ctx, after, w.pageSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := fn(ids); err != nil {
			return err
		}
		if len(ids) < w.pageSize {
			return nil
		}
		after = ids[len(ids)-1]
	}
}

// Shutdown waits for an in-flight run to complete
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily reset worker")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout, a reset may still be running")
		return ctx.Err()
	}
}
