package account

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.Account.
// It backs the memory store driver and tests in other packages.
//
// It keeps the same version rules as the real stores, so concurrent writers
// that bypass the account lock still see ErrVersionConflict.
type FakeRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	getErr    error
	saveErrs  []error
	saveCalls int
}

// NewFakeRepository creates an empty fake store
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{accounts: make(map[string]*domain.Account)}
}

func (f *FakeRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	acct, ok := f.accounts[userID]
	if !ok {
		return nil, nil
	}
	return acct.Clone(), nil
}

func (f *FakeRepository) SaveAccount(ctx context.Context, acct *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saveCalls++
	if len(f.saveErrs) > 0 {
		err := f.saveErrs[0]
		f.saveErrs = f.saveErrs[1:]
		if err != nil {
			return err
		}
	}

	stored, ok := f.accounts[acct.UserID]
	switch {
	case !ok && acct.Version != 0:
		return fmt.Errorf("%w: account %s does not exist at version %d", domain.ErrVersionConflict, acct.UserID, acct.Version)
	case ok && stored.Version != acct.Version:
		return fmt.Errorf("%w: account %s is at version %d, write was based on %d", domain.ErrVersionConflict, acct.UserID, stored.Version, acct.Version)
	}

	acct.Version++
	f.accounts[acct.UserID] = acct.Clone()
	return nil
}

func (f *FakeRepository) ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	ids := make([]string, 0, len(f.accounts))
	for id := range f.accounts {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *FakeRepository) TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	all := make([]*domain.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Points != all[j].Points {
			return all[i].Points > all[j].Points
		}
		return all[i].UserID < all[j].UserID
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	entries := make([]domain.LeaderboardEntry, len(all))
	for i, a := range all {
		entries[i] = domain.LeaderboardEntry{Rank: i + 1, UserID: a.UserID, Points: a.Points}
	}
	return entries, nil
}

func (f *FakeRepository) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getErr
}

// Put stores a copy of acct as-is, bypassing version checks.
func (f *FakeRepository) Put(acct *domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[acct.UserID] = acct.Clone()
}

// Snapshot returns a copy of the stored account or nil.
func (f *FakeRepository) Snapshot(userID string) *domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[userID].Clone()
}

// FailReads makes every read return err until called again with nil.
func (f *FakeRepository) FailReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailNextSaves queues errors returned by upcoming SaveAccount calls, in order.
// A nil entry lets that call succeed.
func (f *FakeRepository) FailNextSaves(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErrs = append(f.saveErrs, errs...)
}

// SaveCalls returns how many times SaveAccount was invoked.
func (f *FakeRepository) SaveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveCalls
}
