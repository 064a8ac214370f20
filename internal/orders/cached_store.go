package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

const (
	cacheKeyPrefix  = "order:"
	DefaultCacheTTL = 10 * time.Minute
)

// CachedStore puts a Redis read cache in front of another Store. Create
// drops the cached entry for the id so Get keeps returning the first stored
// order for that id; cache errors are logged and never fail a call.
type CachedStore struct {
	Store
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		Store:  inner,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"store": "redis-cache"}),
	}
}

func cacheKey(orderID string) string {
	return cacheKeyPrefix + orderID
}

func (s *CachedStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	stored, err := s.Store.Create(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	s.invalidate(ctx, stored.OrderID)
	return stored, nil
}

func (s *CachedStore) Get(ctx context.Context, orderID string) (models.Order, error) {
	key := cacheKey(orderID)

	cached, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		var o models.Order
		if jsonErr := json.Unmarshal([]byte(cached), &o); jsonErr == nil {
			return o, nil
		}
		s.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key})
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	s.cache(ctx, o)
	return o, nil
}

func (s *CachedStore) cache(ctx context.Context, order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(order.OrderID), data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{
			"orderId": order.OrderID,
			"error":   err.Error(),
		})
	}
}

func (s *CachedStore) invalidate(ctx context.Context, orderID string) {
	if err := s.redis.Del(ctx, cacheKey(orderID)).Err(); err != nil {
		s.logger.Warn("cache invalidation failed", map[string]interface{}{
			"orderId": orderID,
			"error":   err.Error(),
		})
	}
}
