package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		points  int64
		delta   int64
		want    int64
		wantErr error
	}{
		{"credit", 100, 50, 150, nil},
		{"debit to zero", 100, -100, 0, nil},
		{"overdraft rejected", 100, -101, 100, domain.ErrInsufficientFunds},
		{"zero delta", 0, 0, 0, nil},
		{"overflow rejected", math.MaxInt64 - 1, 2, math.MaxInt64 - 1, domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := &domain.Account{Points: tt.points}
			err := ApplyDelta(acct, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, acct.Points)
			assert.GreaterOrEqual(t, acct.Points, int64(0))
		})
	}
}

func TestCanAfford(t *testing.T) {
	acct := &domain.Account{Points: 500}

	assert.True(t, CanAfford(acct, 0))
	assert.True(t, CanAfford(acct, 500))
	assert.False(t, CanAfford(acct, 501))
	assert.False(t, CanAfford(acct, -1))
}

func TestRecordEarnings(t *testing.T) {
	const limit = 10000

	t.Run("accumulates on the same day", func(t *testing.T) {
		acct := &domain.Account{DailyEarnings: 9000, LastEarnDate: "2024-05-01"}
		require.NoError(t, RecordEarnings(acct, 1000, "2024-05-01", limit))
		assert.Equal(t, int64(10000), acct.DailyEarnings)
	})

	t.Run("rejects going over the cap", func(t *testing.T) {
		acct := &domain.Account{DailyEarnings: 9950, LastEarnDate: "2024-05-01"}
		err := RecordEarnings(acct, 100, "2024-05-01", limit)
		assert.ErrorIs(t, err, domain.ErrDailyCapExceeded)
		assert.Equal(t, int64(9950), acct.DailyEarnings)
	})

	t.Run("restarts on a new day", func(t *testing.T) {
		acct := &domain.Account{DailyEarnings: 10000, LastEarnDate: "2024-05-01"}
		require.NoError(t, RecordEarnings(acct, 300, "2024-05-02", limit))
		assert.Equal(t, int64(300), acct.DailyEarnings)
		assert.Equal(t, "2024-05-02", acct.LastEarnDate)
	})

	t.Run("rejects negative earnings", func(t *testing.T) {
		acct := &domain.Account{}
		assert.ErrorIs(t, RecordEarnings(acct, -1, "2024-05-02", limit), domain.ErrInvalidAmount)
	})
}

func TestRemainingEarnings(t *testing.T) {
	acct := &domain.Account{DailyEarnings: 2500, LastEarnDate: "2024-05-01"}

	assert.Equal(t, int64(7500), RemainingEarnings(acct, "2024-05-01", 10000))
	assert.Equal(t, int64(10000), RemainingEarnings(acct, "2024-05-02", 10000))
	assert.Equal(t, int64(0), RemainingEarnings(acct, "2024-05-01", 2000))
}
