package worker

import (
	"context"
	"fmt"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// MemberSource lists the users who hold the bonus role
type MemberSource interface {
	BonusRecipients(ctx context.Context) ([]string, error)
}

// BonusGranter credits a bonus to one user
type BonusGranter interface {
	GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error)
}

// WeeklyBonusWorker grants a fixed bonus to every member of the bonus role
type WeeklyBonusWorker struct {
	members MemberSource
	granter BonusGranter
	amount  int64
}

// NewWeeklyBonusWorker creates a WeeklyBonusWorker paying amount per member
func NewWeeklyBonusWorker(members MemberSource, granter BonusGranter, amount int64) *WeeklyBonusWorker {
	if amount <= 0 {
		amount = domain.DefaultWeeklyBonusAmount
	}
	return &WeeklyBonusWorker{members: members, granter: granter, amount: amount}
}

// RunOnce grants the bonus to every current recipient. A failed grant is
// logged and counted; the run continues with the next member.
func (w *WeeklyBonusWorker) RunOnce(ctx context.Context) (*domain.BonusRunResult, error) {
	log := logger.FromContext(ctx)

	recipients, err := w.members.BonusRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus recipients: %w", err)
	}

	result := &domain.BonusRunResult{Amount: w.amount, Recipients: len(recipients)}
	log.Info(LogMsgWeeklyBonusStarting, "recipients", len(recipients), "amount", w.amount)

	for _, userID := range recipients {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := w.granter.GrantBonus(ctx, userID, w.amount); err != nil {
			result.Failed++
			log.Warn(LogMsgWeeklyBonusRecipientError, "user_id", userID, "error", err)
			continue
		}
		result.Granted++
	}

	log.Info(LogMsgWeeklyBonusCompleted, "granted", result.Granted, "failed", result.Failed)
	return result, nil
}
