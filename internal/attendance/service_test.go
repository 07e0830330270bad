package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/clock"
	"github.com/osse101/GuildPoints_Go/internal/config"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/event"
	"github.com/osse101/GuildPoints_Go/internal/wager"
)

type attendanceFixture struct {
	repo  *account.FakeRepository
	clock *clock.SimulatedClock
	bus   *event.MemoryBus
	svc   Service
}

// 2024-05-02 09:00 in UTC+9
var checkInTime = time.Date(2024, 5, 2, 9, 0, 0, 0, domain.EconomyLocation)

func newAttendanceFixture() *attendanceFixture {
	repo := account.NewFakeRepository()
	clk := clock.NewSimulatedClock(checkInTime)
	bus := event.NewMemoryBus()
	accounts := account.NewService(repo, nil, account.DefaultCacheConfig())
	return &attendanceFixture{
		repo:  repo,
		clock: clk,
		bus:   bus,
		svc:   NewService(accounts, bus, clk, testRules),
	}
}

func TestCheckIn_StreakSevenPaysBonus(t *testing.T) {
	f := newAttendanceFixture()
	f.repo.Put(&domain.Account{UserID: "u1", Points: 1000, StreakCount: 6, LastAttendDate: "2024-05-01", Version: 2})

	res, err := f.svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 7, res.StreakCount)
	assert.Equal(t, int64(100), res.BasePoints)
	assert.Equal(t, int64(500), res.BonusPoints)
	assert.Equal(t, int64(600), res.Credited)
	assert.Equal(t, int64(1600), res.Balance)
	assert.Equal(t, "2024-05-02", res.Date)

	stored := f.repo.Snapshot("u1")
	assert.Equal(t, int64(1600), stored.Points)
	assert.True(t, stored.Attended)
}

func TestCheckIn_SecondCallSameDay(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	first := f.repo.Snapshot("u1")

	// Later the same local day
	f.clock.Advance(14 * time.Hour)
	_, err = f.svc.CheckIn(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadyAttended)

	second := f.repo.Snapshot("u1")
	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, first.StreakCount, second.StreakCount)
	assert.Equal(t, first.Version, second.Version)
}

func TestCheckIn_UsesEconomyTimeZone(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	// 14:30 UTC is 23:30 in UTC+9 on 2024-05-02
	f.clock.Set(time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC))
	_, err := f.svc.CheckIn(ctx, "u1")
	require.NoError(t, err)

	// One hour later it is already 2024-05-03 locally, so the streak continues
	f.clock.Advance(time.Hour)
	res, err := f.svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", res.Date)
	assert.Equal(t, 2, res.StreakCount)
}

func TestCheckIn_ConsecutiveDays(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	var total int64
	for day := 1; day <= 30; day++ {
		res, err := f.svc.CheckIn(ctx, "u1")
		require.NoError(t, err, "day %d", day)
		assert.Equal(t, day, res.StreakCount)
		total += res.Credited
		f.clock.AdvanceDays(1)
	}

	// 30 x 100 base, four 7-day bonuses, one 30-day bonus
	assert.Equal(t, int64(3000+4*500+3000), total)
	assert.Equal(t, total, f.repo.Snapshot("u1").Points)
}

func TestCheckIn_PublishesEvents(t *testing.T) {
	f := newAttendanceFixture()
	var types []event.Type
	record := func(ctx context.Context, e event.Event) error {
		types = append(types, e.Type)
		return nil
	}
	f.bus.Subscribe(event.PointsMoved, record)
	f.bus.Subscribe(event.CheckInCompleted, record)

	_, err := f.svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []event.Type{event.PointsMoved, event.CheckInCompleted}, types)
}

func TestCheckIn_StoreFailureGrantsNothing(t *testing.T) {
	f := newAttendanceFixture()
	f.repo.FailNextSaves(errors.New("timeout"))
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, f.repo.Snapshot("u1"))

	// The failed attempt does not count as attendance
	res, err := f.svc.CheckIn(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Balance)
}

func TestCheckIn_ConcurrentSameUser(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, duplicates := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(ctx, "u1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrAlreadyAttended):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, duplicates)
	assert.Equal(t, int64(100), f.repo.Snapshot("u1").Points)
}

func TestResetAccount(t *testing.T) {
	f := newAttendanceFixture()
	f.repo.Put(&domain.Account{UserID: "u1", Points: 10, Attended: true, LastAttendDate: "2024-05-01",
		DailyEarnings: 900, LastEarnDate: "2024-05-01", Version: 1})
	ctx := context.Background()

	changed, err := f.svc.ResetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, changed)

	stored := f.repo.Snapshot("u1")
	assert.False(t, stored.Attended)
	assert.Zero(t, stored.DailyEarnings)
	assert.Equal(t, int64(10), stored.Points)

	saves := f.repo.SaveCalls()
	changed, err = f.svc.ResetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, saves, f.repo.SaveCalls(), "clean accounts are not rewritten")
}

func TestResetAccount_SameDayKeepsCapAndCheckIn(t *testing.T) {
	repo := account.NewFakeRepository()
	clk := clock.NewSimulatedClock(checkInTime)
	accounts := account.NewService(repo, nil, account.DefaultCacheConfig())
	svc := NewService(accounts, nil, clk, testRules)

	table, err := wager.NewTable(config.DefaultEconomy().Games)
	require.NoError(t, err)
	resolver := wager.NewResolver(accounts, table, wager.NewSeededSource(7), nil, clk, domain.DefaultDailyEarnLimit)

	repo.Put(&domain.Account{UserID: "u1", Points: 50000, Attended: true, LastAttendDate: "2024-05-02",
		DailyEarnings: domain.DefaultDailyEarnLimit, LastEarnDate: "2024-05-02", Version: 1})
	ctx := context.Background()

	_, err = resolver.Resolve(ctx, "u1", domain.GameHorse, "1", 1000)
	require.ErrorIs(t, err, domain.ErrDailyCapExceeded)

	changed, err := svc.ResetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = resolver.Resolve(ctx, "u1", domain.GameHorse, "1", 1000)
	assert.ErrorIs(t, err, domain.ErrDailyCapExceeded)

	_, err = svc.CheckIn(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadyAttended)

	stored := repo.Snapshot("u1")
	assert.Equal(t, int64(50000), stored.Points)
	assert.Equal(t, int64(domain.DefaultDailyEarnLimit), stored.DailyEarnings)
	assert.True(t, stored.Attended)

	// after midnight the same reset clears both
	clk.AdvanceDays(1)
	changed, err = svc.ResetAccount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Zero(t, repo.Snapshot("u1").DailyEarnings)
}
