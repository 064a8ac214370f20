package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/logger"
)

func TestCachedStore_GetMissLoadsAndCaches(t *testing.T) {
	ctx := context.Background()
	inner := newTempFileStore(t)
	order := sampleOrder("١٢٣٤٥", "سامي")
	_, err := inner.Create(ctx, order)
	require.NoError(t, err)

	redisClient, redisMock := redismock.NewClientMock()
	store := NewCachedStore(inner, redisClient, 5*time.Minute, logger.NewTestLogger(t))

	cachedData, _ := json.Marshal(order)
	redisMock.ExpectGet("order:١٢٣٤٥").RedisNil()
	redisMock.ExpectSet("order:١٢٣٤٥", cachedData, 5*time.Minute).SetVal("OK")

	got, err := store.Get(ctx, "١٢٣٤٥")

	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedStore_GetHitSkipsInner(t *testing.T) {
	order := sampleOrder("١٢٣٤٥", "سامي")
	cachedData, _ := json.Marshal(order)

	redisClient, redisMock := redismock.NewClientMock()
	store := NewCachedStore(newTempFileStore(t), redisClient, time.Minute, logger.NewTestLogger(t))
	redisMock.ExpectGet("order:١٢٣٤٥").SetVal(string(cachedData))

	got, err := store.Get(context.Background(), "١٢٣٤٥")

	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedStore_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	inner := newTempFileStore(t)
	order := sampleOrder("١٢٣٤٥", "سامي")
	_, err := inner.Create(ctx, order)
	require.NoError(t, err)

	redisClient, redisMock := redismock.NewClientMock()
	store := NewCachedStore(inner, redisClient, time.Minute, logger.NewTestLogger(t))
	cachedData, _ := json.Marshal(order)
	redisMock.ExpectGet("order:١٢٣٤٥").SetErr(errors.New("connection refused"))
	redisMock.ExpectSet("order:١٢٣٤٥", cachedData, time.Minute).SetErr(errors.New("connection refused"))

	got, err := store.Get(ctx, "١٢٣٤٥")

	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedStore_NotFoundIsNotCached(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	store := NewCachedStore(newTempFileStore(t), redisClient, time.Minute, logger.NewTestLogger(t))
	redisMock.ExpectGet("order:٩٩٩٩٩").RedisNil()

	_, err := store.Get(context.Background(), "٩٩٩٩٩")

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func newMiniredisCachedStore(t *testing.T, inner Store) (*CachedStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedStore(inner, client, 0, logger.NewTestLogger(t)), mr
}

func TestCachedStore_CreateInvalidatesWithMiniredis(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniredisCachedStore(t, newTempFileStore(t))
	order := sampleOrder("٥٥٥٥٥", "ليلى")

	_, err := store.Create(ctx, order)
	require.NoError(t, err)
	assert.False(t, mr.Exists("order:٥٥٥٥٥"), "create must not populate the cache")

	got, err := store.Get(ctx, "٥٥٥٥٥")
	require.NoError(t, err)
	assert.Equal(t, order, got)

	require.True(t, mr.Exists("order:٥٥٥٥٥"))
	assert.Equal(t, DefaultCacheTTL, mr.TTL("order:٥٥٥٥٥"))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCachedStore_CollidingIDKeepsFirstOrder(t *testing.T) {
	ctx := context.Background()
	inner := newTempFileStore(t)
	store, _ := newMiniredisCachedStore(t, inner)

	_, err := store.Create(ctx, sampleOrder("١٢٣٤٥", "سامي"))
	require.NoError(t, err)

	// warm the cache before the colliding create
	got, err := store.Get(ctx, "١٢٣٤٥")
	require.NoError(t, err)
	require.Equal(t, "سامي", got.Name)

	_, err = store.Create(ctx, sampleOrder("١٢٣٤٥", "ليلى"))
	require.NoError(t, err)

	fromInner, err := inner.Get(ctx, "١٢٣٤٥")
	require.NoError(t, err)
	fromCache, err := store.Get(ctx, "١٢٣٤٥")
	require.NoError(t, err)

	assert.Equal(t, "سامي", fromInner.Name)
	assert.Equal(t, fromInner, fromCache)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCachedStore_CreateSurvivesRedisDown(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	store := NewCachedStore(newTempFileStore(t), redisClient, time.Minute, logger.NewTestLogger(t))
	redisMock.ExpectDel("order:١٢٣٤٥").SetErr(errors.New("connection refused"))

	stored, err := store.Create(context.Background(), sampleOrder("١٢٣٤٥", "سامي"))

	require.NoError(t, err)
	assert.Equal(t, "سامي", stored.Name)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
