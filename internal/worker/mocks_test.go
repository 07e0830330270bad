package worker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// MockResetter for testing
type MockResetter struct {
	mock.Mock
}

func (m *MockResetter) ResetAccount(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockLister for testing
type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMemberSource for testing
type MockMemberSource struct {
	mock.Mock
}

func (m *MockMemberSource) BonusRecipients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBonusGranter for testing
type MockBonusGranter struct {
	mock.Mock
}

func (m *MockBonusGranter) GrantBonus(ctx context.Context, userID string, amount int64) (*domain.AdjustmentResult, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentResult), args.Error(1)
}
