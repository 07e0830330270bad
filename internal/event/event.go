package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Event represents a committed change in the economy
type Event struct {
	Version    string      `json:"version"`
	Type       Type        `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// PointsMovedPayloadV1 records one committed balance change
type PointsMovedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
}

// WagerResolvedPayloadV1 is the typed payload for wager events
type WagerResolvedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Game      string `json:"game"`
	BetAmount int64  `json:"bet_amount"`
	Won       bool   `json:"won"`
	Payout    int64  `json:"payout"`
}

// CheckInPayloadV1 is the typed payload for check-in events
type CheckInPayloadV1 struct {
	UserID      string `json:"user_id"`
	StreakCount int    `json:"streak_count"`
	Credited    int64  `json:"credited"`
}

// CouponRedeemedPayloadV1 is the typed payload for coupon events
type CouponRedeemedPayloadV1 struct {
	UserID   string `json:"user_id"`
	Code     string `json:"code"`
	Credited int64  `json:"credited"`
}

// ItemPurchasedPayloadV1 is the typed payload for purchase events
type ItemPurchasedPayloadV1 struct {
	ReceiptID string `json:"receipt_id"`
	UserID    string `json:"user_id"`
	Item      string `json:"item"`
	Price     int64  `json:"price"`
}

// DailyResetPayloadV1 is the typed payload for daily reset events
type DailyResetPayloadV1 struct {
	Date          string `json:"date"`
	AccountsReset int    `json:"accounts_reset"`
	Failed        int    `json:"failed"`
}

// New wraps payload in an event of type t stamped with the current time
func New(t Type, payload interface{}) Event {
	return Event{
		Version:    SchemaVersion,
		Type:       t,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

// NewPointsMovedEvent creates a balance change event. Negative deltas are debits.
func NewPointsMovedEvent(userID, source string, delta, balance int64) Event {
	direction := DirectionCredit
	amount := delta
	if delta < 0 {
		direction = DirectionDebit
		amount = -delta
	}
	return New(PointsMoved, PointsMovedPayloadV1{
		UserID:    userID,
		Source:    source,
		Direction: direction,
		Amount:    amount,
		Balance:   balance,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of event.Type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(errFmtHandlerFailures, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishAll publishes events after a commit. Failures are logged and never
// returned since the state change they describe is already persisted.
func PublishAll(ctx context.Context, bus Bus, events ...Event) {
	if bus == nil {
		return
	}
	for _, evt := range events {
		if err := bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
		}
	}
}
