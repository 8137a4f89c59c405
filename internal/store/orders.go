package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateOrder inserts a new order with its denormalized item snapshot.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, items,
		                    subtotal, delivery_fee, discount, total, payment_method,
		                    coupon_id, coupon_code, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	return s.db.QueryRowxContext(ctx, query,
		order.ID, order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.Items,
		order.Subtotal, order.DeliveryFee, order.Discount, order.Total, order.PaymentMethod,
		order.CouponID, order.CouponCode, order.Notes, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

// GetOrderByID retrieves an order by ID.
func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByStatus retrieves orders in a status, newest first.
func (s *Store) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE status = $1 ORDER BY created_at DESC", status)
	return orders, err
}

// GetKitchenOrders retrieves the kitchen queue, oldest first so stale
// orders surface at the top.
func (s *Store) GetKitchenOrders(ctx context.Context) ([]models.Order, error) {
	query, args, err := sqlx.In(
		"SELECT * FROM orders WHERE status IN (?) ORDER BY created_at ASC",
		models.KitchenStatuses())
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var orders []models.Order
	err = s.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

// GetOrdersBetween retrieves orders created in [from, to), newest first.
// Used by the daily closing.
func (s *Store) GetOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC",
		from, to)
	return orders, err
}

// GetOrdersByPhone retrieves a customer's order history.
func (s *Store) GetOrdersByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE customer_phone = $1 ORDER BY created_at DESC", phone)
	return orders, err
}

// UpdateOrderStatus moves the status field; the item snapshot and totals
// are immutable history.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order not found: %s", orderID)
	}
	return nil
}
