package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

const accountColumns = `user_id, points, attended, last_attend_date, streak_count,
	daily_earnings, last_earn_date, used_coupons, version, created_at, updated_at`

// AccountRepository stores one row per account with an optimistic version column
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`

	var acct domain.Account
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&acct.UserID, &acct.Points, &acct.Attended, &acct.LastAttendDate, &acct.StreakCount,
		&acct.DailyEarnings, &acct.LastEarnDate, &acct.UsedCoupons, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToGetAccount, err)
	}
	if len(acct.UsedCoupons) == 0 {
		acct.UsedCoupons = nil
	}
	return &acct, nil
}

// SaveAccount inserts version-zero accounts and otherwise updates the row
// only while its version still matches.
func (r *AccountRepository) SaveAccount(ctx context.Context, acct *domain.Account) error {
	coupons := acct.UsedCoupons
	if coupons == nil {
		coupons = []string{}
	}

	var query string
	args := []any{
		acct.UserID, acct.Points, acct.Attended, acct.LastAttendDate, acct.StreakCount,
		acct.DailyEarnings, acct.LastEarnDate, coupons, acct.UpdatedAt,
	}

	if acct.Version == 0 {
		query = `
			INSERT INTO accounts (user_id, points, attended, last_attend_date, streak_count,
				daily_earnings, last_earn_date, used_coupons, updated_at, created_at, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
			ON CONFLICT (user_id) DO NOTHING
		`
		args = append(args, acct.CreatedAt)
	} else {
		query = `
			UPDATE accounts
			SET points = $2, attended = $3, last_attend_date = $4, streak_count = $5,
				daily_earnings = $6, last_earn_date = $7, used_coupons = $8, updated_at = $9,
				version = version + 1
			WHERE user_id = $1 AND version = $10
		`
		args = append(args, acct.Version)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToSaveAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s changed since version %d", domain.ErrVersionConflict, acct.UserID, acct.Version)
	}

	acct.Version++
	return nil
}

func (r *AccountRepository) ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error) {
	query := `SELECT user_id FROM accounts WHERE user_id > $1 ORDER BY user_id ASC LIMIT NULLIF($2::int, 0)`

	rows, err := r.db.Query(ctx, query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToListAccounts, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToListAccounts, err)
	}
	return ids, nil
}

func (r *AccountRepository) TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, points
		FROM accounts
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToLoadLeaderboard, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		e := domain.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.UserID, &e.Points); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToLoadLeaderboard, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, ErrMsgFailedToLoadLeaderboard, err)
	}
	return entries, nil
}

func (r *AccountRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
