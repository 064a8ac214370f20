package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

const (
	ordersSchema = `CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	order_id TEXT NOT NULL,
	customer_name TEXT NOT NULL,
	items TEXT NOT NULL,
	eta TEXT NOT NULL,
	placed_at TEXT NOT NULL,
	status TEXT NOT NULL
)`

	insertOrderQuery = `INSERT INTO orders (order_id, customer_name, items, eta, placed_at, status) VALUES ($1, $2, $3, $4, $5, $6)`
	selectOrders     = `SELECT order_id, customer_name, items, eta, placed_at, status FROM orders`
	listOrdersQuery  = selectOrders + ` ORDER BY id`
	getOrderQuery    = selectOrders + ` WHERE order_id = $1 ORDER BY id LIMIT 1`
)

// PostgresStore keeps orders in the orders table. Items are stored as a
// JSON array in a text column.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
	}
}

// EnsureSchema creates the orders table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ordersSchema); err != nil {
		return storeErr("schema", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	items, err := json.Marshal(nonNil(order.Items))
	if err != nil {
		return models.Order{}, storeErr("encode items", err)
	}

	_, err = s.db.ExecContext(ctx, insertOrderQuery,
		order.OrderID, order.Name, string(items), order.ETA, order.Timestamp, string(order.Status))
	if err != nil {
		s.logger.Error("insert order failed", map[string]interface{}{
			"orderId": order.OrderID,
			"error":   err.Error(),
		})
		return models.Order{}, storeErr("insert", err)
	}
	return order, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	out := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, orderID string) (models.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, getOrderQuery, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return o, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o      models.Order
		items  string
		status string
	)
	if err := row.Scan(&o.OrderID, &o.Name, &items, &o.ETA, &o.Timestamp, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, err
		}
		return models.Order{}, storeErr("scan", err)
	}
	o.Items = make([]string, 0)
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return models.Order{}, storeErr("decode items", err)
	}
	o.Status = models.OrderStatus(status)
	return o, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
