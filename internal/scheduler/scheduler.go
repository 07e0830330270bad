// Package scheduler runs the economy's calendar jobs in the economy time zone.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Crontabs in the economy time zone
const (
	DailyMidnight  = "0 0 * * *"
	MondayMidnight = "0 0 * * 1"
)

// Job names
const (
	JobDailyReset  = "daily-reset"
	JobWeeklyBonus = "weekly-bonus"
)

// Task is one scheduled unit of work
type Task func(ctx context.Context) error

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron   gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
	jobs   map[string]gocron.Job
}

// New creates a scheduler whose jobs receive a context derived from ctx.
// Cron expressions are evaluated in UTC+9.
func New(ctx context.Context) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(domain.EconomyLocation))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{cron: cron, ctx: ctx, cancel: cancel, jobs: make(map[string]gocron.Job)}, nil
}

// Daily registers task for every local midnight
func (s *Scheduler) Daily(name string, task Task) error {
	return s.add(name, gocron.CronJob(DailyMidnight, false), task)
}

// Weekly registers task for Monday 00:00 local time
func (s *Scheduler) Weekly(name string, task Task) error {
	return s.add(name, gocron.CronJob(MondayMidnight, false), task)
}

// Every registers task at a fixed interval
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	return s.add(name, gocron.DurationJob(interval), task)
}

func (s *Scheduler) add(name string, def gocron.JobDefinition, task Task) error {
	if _, dup := s.jobs[name]; dup {
		return fmt.Errorf("job %q already scheduled", name)
	}

	job, err := s.cron.NewJob(def,
		gocron.NewTask(func() { s.run(name, task) }),
		gocron.WithName(name),
		// A run that overlaps the next trigger skips that trigger.
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.jobs[name] = job
	return nil
}

func (s *Scheduler) run(name string, task Task) {
	ctx := logger.WithRequestID(s.ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	start := time.Now()
	log.Info("Scheduled job starting", "job", name)
	if err := task(ctx); err != nil {
		log.Error("Scheduled job failed", "job", name, "error", err, "duration", time.Since(start))
		return
	}
	log.Info("Scheduled job finished", "job", name, "duration", time.Since(start))
}

// NextRun reports when the named job fires next. Valid after Start.
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	job, ok := s.jobs[name]
	if !ok {
		return time.Time{}, fmt.Errorf("job %q not scheduled", name)
	}
	return job.NextRun()
}

// Start starts running jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	for name := range s.jobs {
		if next, err := s.NextRun(name); err == nil {
			logger.FromContext(s.ctx).Info("Job scheduled", "job", name, "next_run", next)
		}
	}
}

// Stop cancels running jobs' context and waits for them to return
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.cron.Shutdown()
}
