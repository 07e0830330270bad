package metrics

import (
	"context"

	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// EventMetricsCollector subscribes to economy events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all economy events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.Types {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates the counter matching the event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.PointsMovedPayloadV1:
		if p.Direction == event.DirectionDebit {
			PointsDebited.WithLabelValues(p.Source).Add(float64(p.Amount))
		} else {
			PointsCredited.WithLabelValues(p.Source).Add(float64(p.Amount))
		}

	case event.WagerResolvedPayloadV1:
		outcome := OutcomeLoss
		if p.Won {
			outcome = OutcomeWin
		}
		WagersResolved.WithLabelValues(p.Game, outcome).Inc()
		WagerPayout.WithLabelValues(p.Game).Add(float64(p.Payout))

	case event.CheckInPayloadV1:
		CheckIns.Inc()

	case event.CouponRedeemedPayloadV1:
		CouponsRedeemed.WithLabelValues(p.Code).Inc()

	case event.ItemPurchasedPayloadV1:
		ItemsPurchased.WithLabelValues(p.Item).Inc()

	case event.DailyResetPayloadV1:
		DailyResetRuns.Inc()
		DailyResetFailedAccounts.Add(float64(p.Failed))

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
