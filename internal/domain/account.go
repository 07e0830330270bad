package domain

import (
	"sort"
	"time"
)

// Account is the persisted per-user economy record.
//
// Dates are calendar days in the economy time zone formatted as DateLayout.
// An empty date means "never".
type Account struct {
	UserID         string    `json:"user_id"`
	Points         int64     `json:"points"`
	Attended       bool      `json:"attended"`
	LastAttendDate string    `json:"last_attend_date,omitempty"`
	StreakCount    int       `json:"streak_count"`
	DailyEarnings  int64     `json:"daily_earnings"`
	LastEarnDate   string    `json:"last_earn_date,omitempty"`
	UsedCoupons    []string  `json:"used_coupons,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccount returns a fresh account with creation defaults.
func NewAccount(userID string, now time.Time) *Account {
	return &Account{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can mutate without touching cached values.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.UsedCoupons != nil {
		c.UsedCoupons = append([]string(nil), a.UsedCoupons...)
	}
	return &c
}

// HasUsedCoupon reports whether code is already in UsedCoupons.
func (a *Account) HasUsedCoupon(code string) bool {
	for _, c := range a.UsedCoupons {
		if c == code {
			return true
		}
	}
	return false
}

// AddUsedCoupon records code, keeping the set sorted and unique.
func (a *Account) AddUsedCoupon(code string) {
	if a.HasUsedCoupon(code) {
		return
	}
	a.UsedCoupons = append(a.UsedCoupons, code)
	sort.Strings(a.UsedCoupons)
}

// EarningsOn returns the daily earnings that apply to day.
// Earnings recorded on another day count as zero.
func (a *Account) EarningsOn(day string) int64 {
	if a.LastEarnDate != day {
		return 0
	}
	return a.DailyEarnings
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

// BalanceSummary is the read model returned by the balance command.
type BalanceSummary struct {
	UserID         string `json:"user_id"`
	Points         int64  `json:"points"`
	StreakCount    int    `json:"streak_count"`
	AttendedToday  bool   `json:"attended_today"`
	EarnedToday    int64  `json:"earned_today"`
	RemainingToday int64  `json:"remaining_today"`
}
