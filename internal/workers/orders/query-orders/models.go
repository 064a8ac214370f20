package queryorders

import "voice-order-workers/internal/models"

type Input struct {
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
}

// Output always carries orders and totalCount; order is set only for
// lookups by id.
type Output struct {
	Order      *models.Order  `json:"order,omitempty"`
	Orders     []models.Order `json:"orders"`
	TotalCount int            `json:"totalCount"`
}
