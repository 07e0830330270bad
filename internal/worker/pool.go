package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// ErrPoolStopped is returned when enqueueing into a stopped pool
var ErrPoolStopped = errors.New("worker pool stopped")

// Job is a unit of work run by a Pool
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	processed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a pool of workers goroutines sharing a queue of queueSize jobs
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  max(workers, 1),
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the workers. Jobs run with ctx, so they inherit its logger attributes.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for range p.workers {
		go p.run(ctx)
	}
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.process(ctx, job)
		case <-p.quit:
			return
		}
	}
}

// process runs one job; a panicking job counts as failed and the worker keeps going
func (p *Pool) process(ctx context.Context, job Job) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		err = job.Process(ctx)
	}()

	p.processed.Add(1)
	if err != nil {
		p.failed.Add(1)
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job, blocking while the queue is full.
// It gives up when ctx is done or the pool stops.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

// Processed and Failed count finished jobs since the pool was created
func (p *Pool) Processed() int64 { return p.processed.Load() }

func (p *Pool) Failed() int64 { return p.failed.Load() }

// Stop waits for each worker to finish its current job. Jobs still queued are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
