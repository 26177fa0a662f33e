package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BalanceCache implements ports.BalanceCache using Redis.
// Balance queries are non-locking reads, so a short-lived cached value is
// acceptable; every committed mutation and every delete invalidates the key.
type BalanceCache struct {
	client *goredis.Client
	prefix string
}

// NewBalanceCache creates a new Redis-backed balance cache.
func NewBalanceCache(client *goredis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "balance:",
	}
}

// Get retrieves a cached balance. The second return value is false when
// the key does not exist.
func (c *BalanceCache) Get(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+walletID.String()).Result()
	if err != nil {
		if err == goredis.Nil {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("redis balance get: %w", err)
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse cached balance: %w", err)
	}
	return balance, true, nil
}

// Set stores a balance with TTL.
func (c *BalanceCache) Set(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+walletID.String(), balance.String(), ttl).Err()
	if err != nil {
		return fmt.Errorf("redis balance set: %w", err)
	}
	return nil
}

// Invalidate removes a cached balance. Missing keys are not an error.
func (c *BalanceCache) Invalidate(ctx context.Context, walletID uuid.UUID) error {
	err := c.client.Del(ctx, c.prefix+walletID.String()).Err()
	if err != nil {
		return fmt.Errorf("redis balance del: %w", err)
	}
	return nil
}
