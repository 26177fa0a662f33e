package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*BalanceCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewBalanceCache(client), s
}

func TestBalanceCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	walletID := uuid.New()

	// Get before set => miss
	_, found, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.False(t, found)

	balance := decimal.RequireFromString("70.00")
	require.NoError(t, cache.Set(ctx, walletID, balance, 30*time.Second))

	got, found, err := cache.Get(ctx, walletID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, balance.Equal(got))
}

func TestBalanceCache_TTLExpiry(t *testing.T) {
	cache, s := newTestCache(t)
	ctx := context.Background()
	walletID := uuid.New()

	require.NoError(t, cache.Set(ctx, walletID, decimal.RequireFromString("10.00"), 1*time.Second))

	s.FastForward(2 * time.Second)

	_, found, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.False(t, found, "expired key should be a miss")
}

func TestBalanceCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	walletID := uuid.New()

	require.NoError(t, cache.Set(ctx, walletID, decimal.RequireFromString("99.99"), time.Minute))
	require.NoError(t, cache.Invalidate(ctx, walletID))

	_, found, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.False(t, found)

	// Invalidating an absent key is not an error.
	assert.NoError(t, cache.Invalidate(ctx, uuid.New()))
}

func TestBalanceCache_KeysAreScopedPerWallet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, cache.Set(ctx, a, decimal.RequireFromString("1.00"), time.Minute))
	require.NoError(t, cache.Set(ctx, b, decimal.RequireFromString("2.00"), time.Minute))

	gotA, _, err := cache.Get(ctx, a)
	require.NoError(t, err)
	gotB, _, err := cache.Get(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, "1", gotA.String())
	assert.Equal(t, "2", gotB.String())
}

func TestHealthCheck_Ping(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	hc := NewHealthCheck(client)

	assert.Equal(t, "redis", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))

	s.Close()
	assert.Error(t, hc.Ping(context.Background()))
}
