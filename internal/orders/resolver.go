package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

// HistoryNameFinder recovers a customer name from earlier utterances.
type HistoryNameFinder interface {
	FromHistory(history []string) (string, bool)
}

type ResolverConfig struct {
	ETA string
	IDs *IDGenerator
	Now func() time.Time
}

// Resolver turns a validated name and item list into a stored order.
type Resolver struct {
	store  Store
	names  HistoryNameFinder
	config ResolverConfig
	logger logger.Logger
}

func NewResolver(store Store, names HistoryNameFinder, config ResolverConfig, log logger.Logger) *Resolver {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Resolver{
		store:  store,
		names:  names,
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "order-resolver"}),
	}
}

// Commit stores a pending order. An empty name falls back to the most
// recent "my name is" in history; if none is found ErrMissingName is
// returned and nothing is stored.
func (r *Resolver) Commit(ctx context.Context, name string, items []string, history []string) (models.Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if found, ok := r.names.FromHistory(history); ok {
			name = found
		}
	}
	if name == "" {
		return models.Order{}, ErrMissingName
	}

	order := models.Order{
		OrderID:   r.config.IDs.Next(),
		Name:      name,
		Items:     append(make([]string, 0, len(items)), items...),
		ETA:       r.config.ETA,
		Timestamp: r.config.Now().Format(time.RFC3339),
		Status:    models.OrderStatusPending,
	}

	stored, err := r.store.Create(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("commit order %s: %w", order.OrderID, err)
	}

	r.logger.Info("order committed", map[string]interface{}{
		"orderId": stored.OrderID,
		"items":   len(stored.Items),
	})
	return stored, nil
}
