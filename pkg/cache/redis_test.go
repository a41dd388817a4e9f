package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	rc := NewRedisCacheWithClient(db, "findoc")

	mock.ExpectSet("findoc:k", `{"symbol":"AAPL","price":1}`, time.Minute).SetVal("OK")
	mock.ExpectGet("findoc:k").SetVal(`{"symbol":"AAPL","price":1}`)

	require.NoError(t, SetJSON(ctx, rc, "k", payload{Symbol: "AAPL", Price: 1}, time.Minute))
	got, err := GetJSON[payload](ctx, rc, "k")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_MissMapsToErrCacheMiss(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	rc := NewRedisCacheWithClient(db, "findoc")

	mock.ExpectGet("findoc:absent").RedisNil()

	var s string
	assert.ErrorIs(t, rc.Get(ctx, "absent", &s), ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Exists(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	rc := NewRedisCacheWithClient(db, "findoc")

	mock.ExpectExists("findoc:a", "findoc:b").SetVal(1)

	ok, err := rc.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLayeredCache_PromotesFromRedis(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	lc := NewLayeredCache(NewRedisCacheWithClient(db, "findoc"), 10, time.Minute)
	defer lc.memCache.Close()

	mock.ExpectGet("findoc:k").SetVal("v")

	var s string
	require.NoError(t, lc.Get(ctx, "k", &s))
	assert.Equal(t, "v", s)

	// second read is served from memory; no further Redis expectation
	s = ""
	require.NoError(t, lc.Get(ctx, "k", &s))
	assert.Equal(t, "v", s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
