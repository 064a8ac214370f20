// Package orders commits resolved dialogue turns as customer orders and
// persists them through pluggable stores.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-order-workers/internal/models"
)

var (
	ErrMissingName    = errors.New("MISSING_NAME")
	ErrOrderNotFound  = errors.New("ORDER_NOT_FOUND")
	ErrStoreFailure   = errors.New("ORDER_STORE_FAILED")
	ErrIndexFailure   = errors.New("ORDER_INDEX_FAILED")
	ErrPublishFailure = errors.New("ORDER_EVENT_PUBLISH_FAILED")
)

// MissingNameReply is what the customer hears when an order cannot be
// committed without a name.
const MissingNameReply = "من فضلك خبرنا باسمك."

// Store persists orders. Orders are never updated once created.
type Store interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	// Get returns ErrOrderNotFound when no order has the id.
	Get(ctx context.Context, orderID string) (models.Order, error)
}

// NameSearcher is implemented by stores that can look orders up by
// customer name.
type NameSearcher interface {
	SearchByName(ctx context.Context, name string) ([]models.Order, error)
}

// FilterByName keeps the orders placed under exactly name.
func FilterByName(all []models.Order, name string) []models.Order {
	name = strings.TrimSpace(name)
	out := make([]models.Order, 0)
	for _, o := range all {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

// ConfirmationReply is the reply read back once an order is stored.
func ConfirmationReply(order models.Order) string {
	items := ""
	if len(order.Items) > 0 {
		items = fmt.Sprintf(" (%s)", strings.Join(order.Items, ", "))
	}
	return fmt.Sprintf("تم استلام طلبك%s! رقم الطلب: %s, الوقت المتوقع: %s", items, order.OrderID, order.ETA)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreFailure, op, err)
}
