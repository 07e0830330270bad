package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/concurrency"
	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/repository"
)

// ErrSkipSave may be returned by an update func to finish without writing.
var ErrSkipSave = errors.New("account unchanged")

// MutateFunc changes an account in place. Returning an error aborts the
// update and nothing is persisted.
type MutateFunc func(acct *domain.Account) error

// Service is the account store adapter used by every economy component
type Service interface {
	// FetchOrCreate returns the stored account or a fresh zero account.
	// Fresh accounts are not written until their first update.
	FetchOrCreate(ctx context.Context, userID string) (*domain.Account, error)

	// Update runs fn on the current account while holding that account's lock
	// and persists the result. The returned account is the persisted state.
	Update(ctx context.Context, userID string, fn MutateFunc) (*domain.Account, error)

	ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error)
	TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	Ping(ctx context.Context) error
	GetCacheStats() CacheStats
}

type service struct {
	repo  repository.Account
	locks *concurrency.LockManager
	cache *accountCache
	now   func() time.Time
}

// NewService creates an account service
func NewService(repo repository.Account, locks *concurrency.LockManager, cacheCfg CacheConfig) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:  repo,
		locks: locks,
		cache: newAccountCache(cacheCfg),
		now:   time.Now,
	}
}

func (s *service) FetchOrCreate(ctx context.Context, userID string) (*domain.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	if acct, ok := s.cache.Get(userID); ok {
		return acct, nil
	}

	acct, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to load account", "user_id", userID, "error", err)
		return nil, storeError("load account", err)
	}
	if acct == nil {
		return domain.NewAccount(userID, s.now()), nil
	}

	s.cache.Set(acct)
	return acct.Clone(), nil
}

func (s *service) Update(ctx context.Context, userID string, fn MutateFunc) (*domain.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	log := logger.FromContext(ctx)

	// Writers always read through to the store so a stale cache entry can
	// never become the base of a write.
	current, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		s.cache.Invalidate(userID)
		log.Error("Failed to load account for update", "user_id", userID, "error", err)
		return nil, storeError("load account", err)
	}
	if current == nil {
		current = domain.NewAccount(userID, s.now())
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, ErrSkipSave) {
			s.cache.Set(current)
			return current, nil
		}
		return nil, err
	}

	next.UpdatedAt = s.now()
	if err := s.repo.SaveAccount(ctx, next); err != nil {
		s.cache.Invalidate(userID)
		log.Error("Failed to persist account", "user_id", userID, "version", current.Version, "error", err)
		return nil, storeError("persist account", err)
	}

	s.cache.Set(next)
	return next.Clone(), nil
}

func (s *service) ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error) {
	ids, err := s.repo.ListAccountIDs(ctx, after, limit)
	if err != nil {
		return nil, storeError("list accounts", err)
	}
	return ids, nil
}

func (s *service) TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.repo.TopAccounts(ctx, limit)
	if err != nil {
		return nil, storeError("load leaderboard", err)
	}
	return entries, nil
}

func (s *service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}

// storeError keeps transient classifications from the store and marks
// anything else as an unavailable store.
func storeError(op string, err error) error {
	if domain.IsTransient(err) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStoreUnavailable, op, err)
}
