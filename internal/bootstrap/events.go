package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process bus with the metrics collector
// and the point audit log subscribed.
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	bus.Subscribe(event.PointsMoved, auditPointsMoved)

	slog.Info(LogMsgEventSystemInitialized, "types", len(event.Types))
	return bus
}

// auditPointsMoved writes one info line per committed balance change
func auditPointsMoved(ctx context.Context, evt event.Event) error {
	p, ok := evt.Payload.(event.PointsMovedPayloadV1)
	if !ok {
		return nil
	}
	logger.FromContext(ctx).Info(LogMsgPointsMoved,
		"account", p.UserID,
		"source", p.Source,
		"direction", p.Direction,
		"amount", p.Amount,
		"balance", p.Balance)
	return nil
}
