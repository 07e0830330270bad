package ledger

import (
	"fmt"
	"math"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// ApplyDelta adds delta to the account balance.
// It fails with ErrInsufficientFunds when the result would be negative and
// leaves the account untouched on any error.
func ApplyDelta(acct *domain.Account, delta int64) error {
	if delta > 0 && acct.Points > math.MaxInt64-delta {
		return fmt.Errorf("%w: balance overflow", domain.ErrInvalidAmount)
	}
	if acct.Points+delta < 0 {
		return fmt.Errorf("%w: balance %d, change %d", domain.ErrInsufficientFunds, acct.Points, delta)
	}
	acct.Points += delta
	return nil
}

// CanAfford reports whether amount is non-negative and covered by the balance.
func CanAfford(acct *domain.Account, amount int64) bool {
	return amount >= 0 && acct.Points >= amount
}

// CheckEarnings reports whether amount more earnings on today stay within limit.
func CheckEarnings(acct *domain.Account, amount int64, today string, limit int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: earnings must not be negative", domain.ErrInvalidAmount)
	}
	earned := acct.EarningsOn(today)
	if earned+amount > limit {
		return fmt.Errorf("%w: earned %d of %d today, %d more would exceed it",
			domain.ErrDailyCapExceeded, earned, limit, amount)
	}
	return nil
}

// RecordEarnings adds amount to today's earnings, starting from zero when the
// last recorded earnings belong to another day.
func RecordEarnings(acct *domain.Account, amount int64, today string, limit int64) error {
	if err := CheckEarnings(acct, amount, today, limit); err != nil {
		return err
	}
	acct.DailyEarnings = acct.EarningsOn(today) + amount
	acct.LastEarnDate = today
	return nil
}

// RemainingEarnings returns how much more may be earned on today.
func RemainingEarnings(acct *domain.Account, today string, limit int64) int64 {
	remaining := limit - acct.EarningsOn(today)
	if remaining < 0 {
		return 0
	}
	return remaining
}
