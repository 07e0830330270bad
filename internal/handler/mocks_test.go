package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GuildPoints_Go/internal/account"
	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// MockPinger mocks Pinger
type MockPinger struct {
	mock.Mock
}

func NewMockPinger(t *testing.T) *MockPinger {
	m := &MockPinger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLedgerService mocks ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func NewMockLedgerService(t *testing.T) *MockLedgerService {
	m := &MockLedgerService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerService) Balance(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

func (m *MockLedgerService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLedgerService) Grant(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error) {
	args := m.Called(ctx, caller, targetUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentResult), args.Error(1)
}

func (m *MockLedgerService) Revoke(ctx context.Context, caller domain.Caller, targetUserID string, amount int64) (*domain.AdjustmentResult, error) {
	args := m.Called(ctx, caller, targetUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentResult), args.Error(1)
}

func (m *MockLedgerService) GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentResult), args.Error(1)
}

// MockAttendanceService mocks attendance.Service
type MockAttendanceService struct {
	mock.Mock
}

func NewMockAttendanceService(t *testing.T) *MockAttendanceService {
	m := &MockAttendanceService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAttendanceService) CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckInResult), args.Error(1)
}

func (m *MockAttendanceService) ResetAccount(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockResolver mocks wager.Resolver
type MockResolver struct {
	mock.Mock
}

func NewMockResolver(t *testing.T) *MockResolver {
	m := &MockResolver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockResolver) Resolve(ctx context.Context, userID, gameKey, choice string, betAmount int64) (*domain.WagerOutcome, error) {
	args := m.Called(ctx, userID, gameKey, choice, betAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WagerOutcome), args.Error(1)
}

func (m *MockResolver) Games() []domain.GameInfo {
	args := m.Called()
	return args.Get(0).([]domain.GameInfo)
}

// MockRedemptionService mocks redemption.Service
type MockRedemptionService struct {
	mock.Mock
}

func NewMockRedemptionService(t *testing.T) *MockRedemptionService {
	m := &MockRedemptionService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRedemptionService) Redeem(ctx context.Context, userID, code string) (*domain.RedeemResult, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedeemResult), args.Error(1)
}

func (m *MockRedemptionService) Purchase(ctx context.Context, userID, itemName string) (*domain.PurchaseReceipt, error) {
	args := m.Called(ctx, userID, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseReceipt), args.Error(1)
}

func (m *MockRedemptionService) Catalog() []domain.ShopItem {
	args := m.Called()
	return args.Get(0).([]domain.ShopItem)
}

// MockDailyResetter mocks DailyResetter
type MockDailyResetter struct {
	mock.Mock
}

func NewMockDailyResetter(t *testing.T) *MockDailyResetter {
	m := &MockDailyResetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDailyResetter) RunOnce(ctx context.Context) (*domain.DailyResetResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyResetResult), args.Error(1)
}

// MockCacheStatsProvider mocks CacheStatsProvider
type MockCacheStatsProvider struct {
	mock.Mock
}

func NewMockCacheStatsProvider(t *testing.T) *MockCacheStatsProvider {
	m := &MockCacheStatsProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCacheStatsProvider) GetCacheStats() account.CacheStats {
	args := m.Called()
	return args.Get(0).(account.CacheStats)
}
