package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCache_SetGetJSON(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, SetJSON(ctx, mc, "k", payload{Symbol: "AAPL", Price: 190.5}, time.Minute))

	got, err := GetJSON[payload](ctx, mc, "k")
	require.NoError(t, err)
	assert.Equal(t, payload{Symbol: "AAPL", Price: 190.5}, got)

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_MissAndExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "absent", &s), ErrCacheMiss)

	require.NoError(t, mc.Set(ctx, "short", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	assert.ErrorIs(t, mc.Get(ctx, "short", &s), ErrCacheMiss)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", "2", time.Minute))
	time.Sleep(time.Millisecond)

	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", "3", time.Minute))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &s), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &s))
	assert.Equal(t, "1", s)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	require.NoError(t, mc.Delete(ctx, "a"))
	ok, _ := mc.Exists(ctx, "a")
	assert.False(t, ok)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "doc:stock:AAPL:1mo:1d", GenerateKeyWithParams("doc", "stock", "AAPL", "1mo", "1d"))
	assert.Equal(t, "doc:info::", GenerateKeyWithParams("doc", "info", "", ""))
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "disk"})
	assert.Error(t, err)
}

func TestNew_Backends(t *testing.T) {
	svc, err := New(Config{MemoryMaxSize: 5})
	require.NoError(t, err)
	_, ok := svc.(*MemoryCache)
	assert.True(t, ok)
	require.NoError(t, svc.Close())

	_, err = New(Config{Backend: "disk"})
	assert.Error(t, err)
}

func TestRedisConfigDefaults(t *testing.T) {
	c := RedisConfig{PoolSize: 8}.withDefaults()
	assert.Equal(t, "localhost:6379", c.Addr)
	assert.Equal(t, 4, c.MinIdleConns)
	assert.Equal(t, "findoc", c.Prefix)
}
