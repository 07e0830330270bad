package attendance

import (
	"fmt"

	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
)

// Grant is the split of a check-in credit
type Grant struct {
	Base  int64
	Bonus int64
}

// Total returns base plus bonus
func (g Grant) Total() int64 {
	return g.Base + g.Bonus
}

// NextStreak returns the streak after checking in on today.
// It continues only when the previous check-in was yesterday.
func NextStreak(acct *domain.Account, yesterday string) int {
	if acct.LastAttendDate == yesterday {
		return acct.StreakCount + 1
	}
	return 1
}

// GrantFor returns the points earned for reaching streak. Bonuses are additive.
func GrantFor(streak int, rules config.AttendanceConfig) Grant {
	g := Grant{Base: rules.BasePoints}
	for _, b := range rules.StreakBonuses {
		if b.Every > 0 && streak%b.Every == 0 {
			g.Bonus += b.Points
		}
	}
	return g
}

// ApplyCheckIn mutates acct for a check-in on today and returns the grant.
func ApplyCheckIn(acct *domain.Account, today, yesterday string, rules config.AttendanceConfig) (Grant, error) {
	if acct.LastAttendDate == today {
		return Grant{}, fmt.Errorf("%w: %s", domain.ErrAlreadyAttended, today)
	}

	streak := NextStreak(acct, yesterday)
	grant := GrantFor(streak, rules)
	if err := ledger.ApplyDelta(acct, grant.Total()); err != nil {
		return Grant{}, err
	}

	acct.StreakCount = streak
	acct.Attended = true
	acct.LastAttendDate = today
	return grant, nil
}

// ApplyDailyReset clears per-day state left over from before today. State
// stamped with today survives, so an off-schedule run never reopens the
// earnings cap or a check-in. It reports false when there was nothing to clear.
func ApplyDailyReset(acct *domain.Account, today string) bool {
	changed := false
	if acct.Attended && acct.LastAttendDate != today {
		acct.Attended = false
		changed = true
	}
	if acct.DailyEarnings != 0 && acct.LastEarnDate != today {
		acct.DailyEarnings = 0
		changed = true
	}
	return changed
}
