// Package redisstore keeps accounts as JSON documents in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Key layout
const (
	DefaultKeyPrefix = "guildpoints"

	accountKeyFormat = "%s:account:%s"
	indexKeySuffix   = ":accounts"    // ZSET of user ids, all scored 0, for lexical paging
	rankKeySuffix    = ":leaderboard" // ZSET scored by negated points
)

// Options configures the Redis connection
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	slog.Default().Info("Successfully connected to redis", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// AccountStore implements repository.Account on Redis.
// Writes are compare-and-set on the document version using WATCH/MULTI.
type AccountStore struct {
	rdb    *redis.Client
	prefix string
}

// NewAccountStore creates a store using prefix for every key
func NewAccountStore(rdb *redis.Client, prefix string) *AccountStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &AccountStore{rdb: rdb, prefix: prefix}
}

func (s *AccountStore) accountKey(userID string) string {
	return fmt.Sprintf(accountKeyFormat, s.prefix, userID)
}

func (s *AccountStore) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acct, err := readAccount(ctx, s.rdb, s.accountKey(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get account: %w", domain.ErrStoreUnavailable, err)
	}
	return acct, nil
}

// getter is the read half shared by *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readAccount(ctx context.Context, c getter, key string) (*domain.Account, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var acct domain.Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("corrupt account document %s: %w", key, err)
	}
	return &acct, nil
}

func (s *AccountStore) SaveAccount(ctx context.Context, acct *domain.Account) error {
	key := s.accountKey(acct.UserID)

	next := acct.Clone()
	next.Version = acct.Version + 1
	doc, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode account %s: %w", acct.UserID, err)
	}

	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := readAccount(ctx, tx, key)
		if err != nil {
			return err
		}

		switch {
		case stored == nil && acct.Version != 0:
			return fmt.Errorf("%w: account %s does not exist at version %d", domain.ErrVersionConflict, acct.UserID, acct.Version)
		case stored != nil && stored.Version != acct.Version:
			return fmt.Errorf("%w: account %s is at version %d, write was based on %d",
				domain.ErrVersionConflict, acct.UserID, stored.Version, acct.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.ZAdd(ctx, s.prefix+indexKeySuffix, &redis.Z{Score: 0, Member: acct.UserID})
			pipe.ZAdd(ctx, s.prefix+rankKeySuffix, &redis.Z{Score: -float64(acct.Points), Member: acct.UserID})
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		acct.Version = next.Version
		return nil
	case errors.Is(err, domain.ErrVersionConflict):
		return err
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: account %s was written concurrently", domain.ErrVersionConflict, acct.UserID)
	default:
		return fmt.Errorf("%w: failed to save account: %w", domain.ErrStoreUnavailable, err)
	}
}

func (s *AccountStore) ListAccountIDs(ctx context.Context, after string, limit int) ([]string, error) {
	start := "-"
	if after != "" {
		start = "(" + after
	}
	by := &redis.ZRangeBy{Min: start, Max: "+"}
	if limit > 0 {
		by.Count = int64(limit)
	}

	ids, err := s.rdb.ZRangeByLex(ctx, s.prefix+indexKeySuffix, by).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list accounts: %w", domain.ErrStoreUnavailable, err)
	}
	return ids, nil
}

// TopAccounts ranks by points descending. Scores are negated so ties come
// back in ascending member order.
func (s *AccountStore) TopAccounts(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	zs, err := s.rdb.ZRangeWithScores(ctx, s.prefix+rankKeySuffix, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load leaderboard: %w", domain.ErrStoreUnavailable, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{
			Rank:   i + 1,
			UserID: member,
			Points: int64(-z.Score),
		})
	}
	return entries, nil
}

func (s *AccountStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
