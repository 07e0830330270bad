package attendance

import (
	"context"
	"errors"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// Service tracks daily check-ins and streaks
type Service interface {
	CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error)

	// ResetAccount clears one account's daily flags from earlier days and reports whether it changed.
	ResetAccount(ctx context.Context, userID string) (bool, error)
}

type service struct {
	accounts account.Service
	bus      event.Bus
	clock    clock.Clock
	rules    config.AttendanceConfig
}

// NewService creates an attendance service. bus may be nil.
func NewService(accounts account.Service, bus event.Bus, clk clock.Clock, rules config.AttendanceConfig) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		accounts: accounts,
		bus:      bus,
		clock:    clk,
		rules:    rules,
	}
}

func (s *service) CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error) {
	now := s.clock.Now()
	today := domain.DayKey(now)
	yesterday := domain.PreviousDayKey(now)

	var grant Grant
	acct, err := s.accounts.Update(ctx, userID, func(a *domain.Account) error {
		var applyErr error
		grant, applyErr = ApplyCheckIn(a, today, yesterday, s.rules)
		return applyErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAttended) {
			logger.FromContext(ctx).Info("Duplicate check-in rejected", "user_id", userID, "date", today)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("Check-in recorded",
		"user_id", userID, "date", today, "streak", acct.StreakCount, "credited", grant.Total())

	event.PublishAll(ctx, s.bus,
		event.NewPointsMovedEvent(userID, domain.SourceAttendance, grant.Total(), acct.Points),
		event.New(event.CheckInCompleted, event.CheckInPayloadV1{
			UserID:      userID,
			StreakCount: acct.StreakCount,
			Credited:    grant.Total(),
		}),
	)

	return &domain.CheckInResult{
		UserID:      userID,
		Date:        today,
		StreakCount: acct.StreakCount,
		BasePoints:  grant.Base,
		BonusPoints: grant.Bonus,
		Credited:    grant.Total(),
		Balance:     acct.Points,
	}, nil
}

func (s *service) ResetAccount(ctx context.Context, userID string) (bool, error) {
	today := domain.DayKey(s.clock.Now())
	changed := false
	_, err := s.accounts.Update(ctx, userID, func(a *domain.Account) error {
		if !ApplyDailyReset(a, today) {
			return account.ErrSkipSave
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
