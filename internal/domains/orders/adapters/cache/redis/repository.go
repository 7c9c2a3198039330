// Package redis caches order counters in front of the order repository.
package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
)

const DefaultTTL = 30 * time.Second

// CountCache decorates an order repository and caches CountByStoreAndStatus.
// Redis failures fall back to the inner repository.
type CountCache struct {
	ports.Repository
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*CountCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *CountCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *CountCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewCountCache(inner ports.Repository, client goredis.Cmdable, opts ...Option) *CountCache {
	c := &CountCache{
		Repository: inner,
		client:     client,
		ttl:        DefaultTTL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CountKey is the cache key of one store and status counter.
func CountKey(storeID int64, status domain.Status) string {
	return "orders:count:" + strconv.FormatInt(storeID, 10) + ":" + string(status)
}

func (c *CountCache) CountByStoreAndStatus(ctx context.Context, storeID int64, status domain.Status) (int64, error) {
	key := CountKey(storeID, status)
	cached, err := c.client.Get(ctx, key).Int64()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, goredis.Nil):
		c.logger.WarnContext(ctx, "order count cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	count, err := c.Repository.CountByStoreAndStatus(ctx, storeID, status)
	if err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, key, count, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "order count cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return count, nil
}

// Save writes through and drops every counter of the order's store. Inside a
// transaction the drop happens before commit, so a concurrent reader may cache the
// old value until the TTL expires.
func (c *CountCache) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	saved, err := c.Repository.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, saved.StoreID)
	return saved, nil
}

func (c *CountCache) invalidate(ctx context.Context, storeID int64) {
	if storeID <= 0 {
		return
	}
	keys := []string{
		CountKey(storeID, domain.StatusPlaced),
		CountKey(storeID, domain.StatusConfirm),
		CountKey(storeID, domain.StatusCanceled),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "order count cache invalidation failed",
			slog.Int64("store.id", storeID),
			slog.String("error", err.Error()),
		)
	}
}

var _ ports.Repository = (*CountCache)(nil)
