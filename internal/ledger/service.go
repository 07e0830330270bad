package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Service exposes balance reads and direct point adjustments
type Service interface {
	Balance(ctx context.Context, userID string) (*domain.BalanceSummary, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Grant and Revoke are admin-only. The dispatcher checks the role first;
	// the caller is checked again here.
	Grant(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error)
	Revoke(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error)

	// GrantBonus credits a scheduled bonus such as the weekly role bonus.
	GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error)
}

type service struct {
	accounts       account.Service
	bus            event.Bus
	clock          clock.Clock
	dailyEarnLimit int64
}

// NewService creates a ledger service. bus may be nil.
func NewService(accounts account.Service, bus event.Bus, clk clock.Clock, dailyEarnLimit int64) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if dailyEarnLimit <= 0 {
		dailyEarnLimit = domain.DefaultDailyEarnLimit
	}
	return &service{
		accounts:       accounts,
		bus:            bus,
		clock:          clk,
		dailyEarnLimit: dailyEarnLimit,
	}
}

func (s *service) Balance(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	acct, err := s.accounts.FetchOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.DayKey(s.clock.Now())
	return &domain.BalanceSummary{
		UserID:         acct.UserID,
		Points:         acct.Points,
		StreakCount:    acct.StreakCount,
		AttendedToday:  acct.LastAttendDate == today,
		EarnedToday:    acct.EarningsOn(today),
		RemainingToday: RemainingEarnings(acct, today, s.dailyEarnLimit),
	}, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	switch {
	case limit <= 0:
		limit = domain.DefaultLeaderboardLimit
	case limit > domain.MaxLeaderboardLimit:
		limit = domain.MaxLeaderboardLimit
	}
	return s.accounts.TopAccounts(ctx, limit)
}

func (s *service) Grant(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error) {
	if err := requireAdmin(ctx, caller, "grant"); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.adjust(ctx, targetUserID, amount, domain.SourceAdmin)
}

func (s *service) Revoke(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error) {
	if err := requireAdmin(ctx, caller, "revoke"); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.adjust(ctx, targetUserID, -amount, domain.SourceAdmin)
}

func (s *service) GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return s.adjust(ctx, userID, amount, domain.SourceBonus)
}

func (s *service) adjust(ctx context.Context, userID string, delta int64, source string) (*domain.AdjustmentResult, error) {
	acct, err := s.accounts.Update(ctx, userID, func(a *domain.Account) error {
		return ApplyDelta(a, delta)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Points adjusted",
		"user_id", userID, "delta", delta, "source", source, "balance", acct.Points)
	event.PublishAll(ctx, s.bus, event.NewPointsMovedEvent(userID, source, delta, acct.Points))

	return &domain.AdjustmentResult{
		UserID:  userID,
		Delta:   delta,
		Balance: acct.Points,
		Source:  source,
	}, nil
}

func requireAdmin(ctx context.Context, caller domain.Caller, op string) error {
	if caller.IsAdmin {
		return nil
	}
	logger.FromContext(ctx).Warn("Rejected non-admin adjustment", "caller", caller.UserID, "op", op)
	return fmt.Errorf("%w: %s requires the administrator role", domain.ErrUnauthorized, op)
}
