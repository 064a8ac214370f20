// cmd/worker-manager/stores.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"voice-order-workers/internal/common/config"
	"voice-order-workers/internal/common/database"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/orders"
)

// orderStack is the order store with its optional cache and search index,
// plus the connections that back them.
type orderStack struct {
	Store  orders.Store
	Search *orders.SearchIndex

	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func buildOrderStack(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (*orderStack, error) {
	stack := &orderStack{}

	switch cfg.Orders.Store {
	case config.StorePostgres:
		err := retryWithBackoff(func() error {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			stack.pg = pg
			return nil
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		zapLog.Info("PostgreSQL connected successfully")

		pgStore := orders.NewPostgresStore(stack.pg.DB, log)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			stack.Close()
			return nil, fmt.Errorf("ensure orders schema: %w", err)
		}
		stack.Store = pgStore

	default:
		fileStore, err := orders.NewFileStore(cfg.Orders.FilePath)
		if err != nil {
			return nil, err
		}
		zapLog.Info("Using file order store", zap.String("path", fileStore.Path()))
		stack.Store = fileStore
	}

	if cfg.Orders.CacheEnabled() {
		stack.redis = database.NewRedis(cfg.Database.Redis)
		err := retryWithBackoff(func() error {
			return stack.redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			stack.Close()
			return nil, err
		}
		stack.Store = orders.NewCachedStore(stack.Store, stack.redis.Client, config.GetDuration(cfg.Orders.CacheTTL), log)
		zapLog.Info("Redis order cache enabled", zap.Int("ttl_ms", cfg.Orders.CacheTTL))
	}

	if cfg.Orders.SearchIndex != "" {
		err := retryWithBackoff(func() error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			stack.es = es
			return nil
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			stack.Close()
			return nil, err
		}
		stack.Search = orders.NewSearchIndex(stack.es.Client, cfg.Orders.SearchIndex, log)
		zapLog.Info("Elasticsearch order index enabled", zap.String("index", cfg.Orders.SearchIndex))
	}

	return stack, nil
}

// Ping checks the connections the store depends on.
func (s *orderStack) Ping(ctx context.Context) error {
	if s.pg != nil {
		if err := s.pg.Ping(ctx); err != nil {
			return err
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderStack) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pg != nil {
		_ = s.pg.Close()
	}
}
