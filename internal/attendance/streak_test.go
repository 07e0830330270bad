package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
)

var testRules = config.AttendanceConfig{
	BasePoints: 100,
	StreakBonuses: []config.StreakBonus{
		{Every: 7, Points: 500},
		{Every: 30, Points: 3000},
	},
}

func TestGrantFor(t *testing.T) {
	tests := []struct {
		streak int
		want   Grant
	}{
		{1, Grant{Base: 100}},
		{6, Grant{Base: 100}},
		{7, Grant{Base: 100, Bonus: 500}},
		{14, Grant{Base: 100, Bonus: 500}},
		{30, Grant{Base: 100, Bonus: 3000}},
		{210, Grant{Base: 100, Bonus: 3500}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GrantFor(tt.streak, testRules), "streak %d", tt.streak)
	}
}

func TestApplyCheckIn(t *testing.T) {
	t.Run("continues streak from yesterday", func(t *testing.T) {
		acct := &domain.Account{Points: 0, StreakCount: 6, LastAttendDate: "2024-05-01"}

		grant, err := ApplyCheckIn(acct, "2024-05-02", "2024-05-01", testRules)
		require.NoError(t, err)

		assert.Equal(t, int64(600), grant.Total())
		assert.Equal(t, 7, acct.StreakCount)
		assert.Equal(t, int64(600), acct.Points)
		assert.True(t, acct.Attended)
		assert.Equal(t, "2024-05-02", acct.LastAttendDate)
	})

	t.Run("gap restarts streak", func(t *testing.T) {
		acct := &domain.Account{StreakCount: 29, LastAttendDate: "2024-04-29"}

		grant, err := ApplyCheckIn(acct, "2024-05-02", "2024-05-01", testRules)
		require.NoError(t, err)

		assert.Equal(t, 1, acct.StreakCount)
		assert.Equal(t, int64(100), grant.Total())
	})

	t.Run("first ever check-in", func(t *testing.T) {
		acct := &domain.Account{}

		_, err := ApplyCheckIn(acct, "2024-05-02", "2024-05-01", testRules)
		require.NoError(t, err)
		assert.Equal(t, 1, acct.StreakCount)
	})

	t.Run("same day is rejected without changes", func(t *testing.T) {
		acct := &domain.Account{Points: 700, StreakCount: 3, Attended: true, LastAttendDate: "2024-05-02"}
		before := *acct

		_, err := ApplyCheckIn(acct, "2024-05-02", "2024-05-01", testRules)
		assert.ErrorIs(t, err, domain.ErrAlreadyAttended)
		assert.Equal(t, before, *acct)
	})
}

func TestApplyDailyReset(t *testing.T) {
	t.Run("clears yesterday's state", func(t *testing.T) {
		acct := &domain.Account{Points: 50, Attended: true, DailyEarnings: 300, StreakCount: 4,
			LastAttendDate: "2024-05-01", LastEarnDate: "2024-05-01"}

		assert.True(t, ApplyDailyReset(acct, "2024-05-02"))
		assert.False(t, acct.Attended)
		assert.Zero(t, acct.DailyEarnings)
		assert.Equal(t, 4, acct.StreakCount, "streak survives the reset")
		assert.Equal(t, int64(50), acct.Points)

		assert.False(t, ApplyDailyReset(acct, "2024-05-02"))
	})

	t.Run("keeps today's state", func(t *testing.T) {
		acct := &domain.Account{Attended: true, DailyEarnings: 10000,
			LastAttendDate: "2024-05-02", LastEarnDate: "2024-05-02"}
		before := *acct

		assert.False(t, ApplyDailyReset(acct, "2024-05-02"))
		assert.Equal(t, before, *acct)
	})

	t.Run("mixed days", func(t *testing.T) {
		acct := &domain.Account{Attended: true, DailyEarnings: 700,
			LastAttendDate: "2024-05-01", LastEarnDate: "2024-05-02"}

		assert.True(t, ApplyDailyReset(acct, "2024-05-02"))
		assert.False(t, acct.Attended)
		assert.Equal(t, int64(700), acct.DailyEarnings)
	})
}
