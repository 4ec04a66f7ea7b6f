// Package cache provides Redis-backed caching for derived safe balances.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apptrade "github.com/retailcore/backend/internal/application/trade"
	apptreasury "github.com/retailcore/backend/internal/application/treasury"
	"github.com/retailcore/backend/internal/domain/treasury"
)

const balanceKeyPrefix = "treasury:balance:"

// RedisBalanceCache caches safe balance breakdowns in Redis. The balance is
// derived from five transaction streams, so computing it costs several
// aggregate queries; the cache keeps the read path off the database between
// cash-affecting writes. Entries carry a TTL that bounds staleness if an
// invalidation is ever missed.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisBalanceCache creates a RedisBalanceCache and verifies the connection.
func NewRedisBalanceCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisBalanceCacheWithClient(client, ttl, logger), nil
}

// NewRedisBalanceCacheWithClient creates a cache over an existing client.
func NewRedisBalanceCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisBalanceCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisBalanceCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached breakdown for a safe, or (nil, nil) on a miss.
// A corrupt entry is treated as a miss and dropped.
func (c *RedisBalanceCache) Get(ctx context.Context, safeID uuid.UUID) (*treasury.BalanceBreakdown, error) {
	data, err := c.client.Get(ctx, balanceKey(safeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached balance: %w", err)
	}

	var breakdown treasury.BalanceBreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		c.logger.Warn("Dropping corrupt cached balance",
			zap.String("safe_id", safeID.String()),
			zap.Error(err),
		)
		c.client.Del(ctx, balanceKey(safeID))
		return nil, nil
	}
	return &breakdown, nil
}

// Set stores the breakdown for a safe with the configured TTL.
func (c *RedisBalanceCache) Set(ctx context.Context, safeID uuid.UUID, breakdown *treasury.BalanceBreakdown) error {
	data, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode balance: %w", err)
	}
	if err := c.client.Set(ctx, balanceKey(safeID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	return nil
}

// InvalidateBalance drops the cached entries of the given safes. Invalidation
// is best-effort: a failure is logged, never surfaced, because the TTL caps
// how long a stale entry can live.
func (c *RedisBalanceCache) InvalidateBalance(ctx context.Context, safeIDs ...uuid.UUID) {
	if len(safeIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(safeIDs))
	for _, id := range safeIDs {
		keys = append(keys, balanceKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached balances",
			zap.Int("safes", len(safeIDs)),
			zap.Error(err),
		)
	}
}

// Close closes the Redis client.
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

func balanceKey(safeID uuid.UUID) string {
	return balanceKeyPrefix + safeID.String()
}

var _ apptreasury.BalanceCache = (*RedisBalanceCache)(nil)
var _ apptrade.BalanceInvalidator = (*RedisBalanceCache)(nil)
