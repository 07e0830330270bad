package repository

import (
	"context"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Account defines persistence for per-user economy records.
//
// Implementations return (nil, nil) from GetAccount when no record exists and
// wrap infrastructure failures with domain.ErrStoreUnavailable.
type Account interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)

	// SaveAccount writes the account if its stored version still equals
	// account.Version and increments the version on success. A record that does
	// not exist yet is inserted when account.Version is zero. Stale writes
	// return domain.ErrVersionConflict.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// ListAccountIDs pages through all user IDs in ascending order, starting
	// after the given cursor.
	ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error)

	TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	Ping(ctx context.Context) error
}
