// internal/models/order.go
package models

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// Order is a committed customer order. Orders are append-only once stored.
type Order struct {
	OrderID   string      `json:"order_id" db:"order_id"`
	Name      string      `json:"name" db:"customer_name"`
	Items     []string    `json:"items" db:"items"`
	ETA       string      `json:"eta" db:"eta"`
	Timestamp string      `json:"timestamp" db:"placed_at"`
	Status    OrderStatus `json:"status" db:"status"`
}
