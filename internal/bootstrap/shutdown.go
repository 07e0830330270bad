package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GuildPoints_Go/internal/scheduler"
	"github.com/osse101/GuildPoints_Go/internal/server"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

// ShutdownComponents holds everything GracefulShutdown stops. Nil fields are skipped.
type ShutdownComponents struct {
	Server           *server.Server
	Scheduler        *scheduler.Scheduler
	DailyResetWorker *worker.DailyResetWorker
	Pool             *worker.Pool
	Store            *Store
}

// GracefulShutdown stops intake first and storage last: HTTP server, scheduler,
// in-flight resets, worker pool, store. A failing step is logged and the rest still run.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		logStepError(LogMsgServerForcedShutdown, c.Server.Stop(ctx))
	}
	if c.Scheduler != nil {
		logStepError(LogMsgSchedulerShutdownFailed, c.Scheduler.Stop())
	}
	if c.DailyResetWorker != nil {
		logStepError(LogMsgResetWorkerShutdownFailed, c.DailyResetWorker.Shutdown(ctx))
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.Store != nil {
		c.Store.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}

func logStepError(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
	}
}
