package wager

import (
	"context"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Resolver settles wagers for every configured game
type Resolver interface {
	Resolve(ctx context.Context, userID, gameKey, choice string, betAmount int64) (*domain.WagerOutcome, error)
	Games() []domain.GameInfo
}

type resolver struct {
	accounts       account.Service
	table          *Table
	rng            Source
	bus            event.Bus
	clock          clock.Clock
	dailyEarnLimit int64
}

// NewResolver creates a resolver. A nil rng uses NewSource; bus may be nil.
func NewResolver(accounts account.Service, table *Table, rng Source, bus event.Bus, clk clock.Clock, dailyEarnLimit int64) Resolver {
	if rng == nil {
		rng = NewSource()
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if dailyEarnLimit <= 0 {
		dailyEarnLimit = domain.DefaultDailyEarnLimit
	}
	return &resolver{
		accounts:       accounts,
		table:          table,
		rng:            rng,
		bus:            bus,
		clock:          clk,
		dailyEarnLimit: dailyEarnLimit,
	}
}

func (r *resolver) Games() []domain.GameInfo {
	return r.table.Infos()
}

// Resolve validates the bet, debits it, samples the game once and credits the
// gross payout on a win. All of it lands in a single persisted write.
func (r *resolver) Resolve(ctx context.Context, userID, gameKey, choice string, betAmount int64) (*domain.WagerOutcome, error) {
	log := logger.FromContext(ctx)

	game, err := r.table.Lookup(gameKey)
	if err != nil {
		return nil, err
	}
	choice, err = game.NormalizeChoice(choice)
	if err != nil {
		return nil, err
	}
	if err := game.ValidateBet(betAmount); err != nil {
		return nil, err
	}

	today := domain.DayKey(r.clock.Now())
	var d draw
	var payout int64

	acct, err := r.accounts.Update(ctx, userID, func(a *domain.Account) error {
		if !ledger.CanAfford(a, betAmount) {
			return domain.ErrInsufficientFunds
		}
		// A win records the bet as earnings, so that is the amount to check.
		if err := ledger.CheckEarnings(a, betAmount, today, r.dailyEarnLimit); err != nil {
			return err
		}
		if err := ledger.ApplyDelta(a, -betAmount); err != nil {
			return err
		}

		if game.IsSlots() {
			d = drawSlots(game, r.rng)
		} else {
			d = drawChoice(game, choice, r.rng)
		}

		payout = 0
		if !d.won {
			return nil
		}
		payout = betAmount * game.PayoutMultiple
		if err := ledger.ApplyDelta(a, payout); err != nil {
			return err
		}
		return ledger.RecordEarnings(a, betAmount, today, r.dailyEarnLimit)
	})
	if err != nil {
		log.Info("Wager rejected", "user_id", userID, "game", game.Key, "bet", betAmount, "error", err)
		return nil, err
	}

	log.Info("Wager resolved",
		"user_id", userID, "game", game.Key, "bet", betAmount, "won", d.won, "payout", payout, "balance", acct.Points)

	events := []event.Event{event.NewPointsMovedEvent(userID, domain.SourceWager, -betAmount, acct.Points-payout)}
	if payout > 0 {
		events = append(events, event.NewPointsMovedEvent(userID, domain.SourceWager, payout, acct.Points))
	}
	events = append(events, event.New(event.WagerResolved, event.WagerResolvedPayloadV1{
		UserID:    userID,
		Game:      game.Key,
		BetAmount: betAmount,
		Won:       d.won,
		Payout:    payout,
	}))
	event.PublishAll(ctx, r.bus, events...)

	return &domain.WagerOutcome{
		UserID:         userID,
		Game:           game.Key,
		Choice:         choice,
		Result:         d.result,
		Reels:          d.reels,
		BetAmount:      betAmount,
		Won:            d.won,
		Payout:         payout,
		NetChange:      payout - betAmount,
		Balance:        acct.Points,
		EarnedToday:    acct.EarningsOn(today),
		PayoutMultiple: game.PayoutMultiple,
	}, nil
}
