package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/food-order-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
)

type countingRepository struct {
	*ordermemory.Repository
	counts int
}

func (r *countingRepository) CountByStoreAndStatus(ctx context.Context, storeID int64, status domain.Status) (int64, error) {
	r.counts++
	return r.Repository.CountByStoreAndStatus(ctx, storeID, status)
}

func placeOrder(t *testing.T, cache *CountCache, storeID int64) *domain.Order {
	t.Helper()
	line, err := domain.NewLine(1, "M1", 10000, 1, nil)
	require.NoError(t, err)
	order, err := domain.NewOrder(1, storeID, []domain.Line{line}, time.Now())
	require.NoError(t, err)
	saved, err := cache.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func newCache(t *testing.T) (*miniredis.Miniredis, *countingRepository, *CountCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	inner := &countingRepository{Repository: ordermemory.NewRepository()}
	return mr, inner, NewCountCache(inner, client, WithTTL(time.Minute))
}

func TestCountCache_ServesFromCache(t *testing.T) {
	mr, inner, cache := newCache(t)
	ctx := context.Background()
	placeOrder(t, cache, 1)

	first, err := cache.CountByStoreAndStatus(ctx, 1, domain.StatusPlaced)
	require.NoError(t, err)
	second, err := cache.CountByStoreAndStatus(ctx, 1, domain.StatusPlaced)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(1), second)
	assert.Equal(t, 1, inner.counts)
	assert.True(t, mr.Exists(CountKey(1, domain.StatusPlaced)))
	assert.Equal(t, time.Minute, mr.TTL(CountKey(1, domain.StatusPlaced)))
}

func TestCountCache_SaveInvalidatesStoreCounters(t *testing.T) {
	mr, inner, cache := newCache(t)
	ctx := context.Background()
	order := placeOrder(t, cache, 1)
	_, err := cache.CountByStoreAndStatus(ctx, 1, domain.StatusCanceled)
	require.NoError(t, err)
	require.NoError(t, mr.Set(CountKey(2, domain.StatusCanceled), "7"))

	require.NoError(t, order.Cancel(time.Now()))
	_, err = cache.Save(ctx, order)
	require.NoError(t, err)

	assert.False(t, mr.Exists(CountKey(1, domain.StatusCanceled)))
	assert.True(t, mr.Exists(CountKey(2, domain.StatusCanceled)))
	count, err := cache.CountByStoreAndStatus(ctx, 1, domain.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 2, inner.counts)
}

func TestCountCache_FallsBackWhenRedisIsDown(t *testing.T) {
	mr, inner, cache := newCache(t)
	placeOrder(t, cache, 1)
	mr.Close()

	count, err := cache.CountByStoreAndStatus(context.Background(), 1, domain.StatusPlaced)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, inner.counts)
	placeOrder(t, cache, 1)
}
