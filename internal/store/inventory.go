package store

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

// ListInventoryItems retrieves all stock items.
func (s *Store) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM inventory_items ORDER BY name")
	return items, err
}

// CreateInventoryItem inserts a stock item. Quantity starts at zero;
// purchases add to it.
func (s *Store) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, name, unit, quantity, last_cost, min_stock_alert)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING created_at`
	return s.db.GetContext(ctx, &item.CreatedAt, query,
		item.ID, item.Name, item.Unit, item.LastCost, item.MinStockAlert)
}

// RecordInventoryTransaction inserts a stock movement and applies it to the
// item's quantity in one transaction. Purchases also refresh last_cost.
func (s *Store) RecordInventoryTransaction(ctx context.Context, txn *models.InventoryTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	delta := txn.Quantity
	if txn.Type == models.InventoryTxUsage {
		delta = -delta
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE inventory_items SET quantity = quantity + $1 WHERE id = $2",
		delta, txn.ItemID)
	if err != nil {
		return fmt.Errorf("failed to apply stock movement: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("inventory item not found: %s", txn.ItemID)
	}

	if txn.Type == models.InventoryTxPurchase && txn.UnitCost != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE inventory_items SET last_cost = $1 WHERE id = $2",
			*txn.UnitCost, txn.ItemID); err != nil {
			return fmt.Errorf("failed to update last cost: %w", err)
		}
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO inventory_transactions (id, item_id, type, quantity, unit_cost, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		txn.ID, txn.ItemID, txn.Type, txn.Quantity, txn.UnitCost, txn.Notes,
	).Scan(&txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	return tx.Commit()
}

// ListInventoryTransactions retrieves movements for an item, newest first.
func (s *Store) ListInventoryTransactions(ctx context.Context, itemID string) ([]models.InventoryTransaction, error) {
	var txns []models.InventoryTransaction
	err := s.db.SelectContext(ctx, &txns,
		"SELECT * FROM inventory_transactions WHERE item_id = $1 ORDER BY created_at DESC", itemID)
	return txns, err
}

// CreateExpense inserts an expense entry.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO expenses (id, description, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return s.db.GetContext(ctx, &e.CreatedAt, query,
		e.ID, e.Description, e.Amount, e.Date)
}

// ListExpenses retrieves all expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.SelectContext(ctx, &expenses,
		"SELECT * FROM expenses ORDER BY date DESC, created_at DESC")
	return expenses, err
}

// GetExpensesBetween retrieves expenses dated in [from, to).
func (s *Store) GetExpensesBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.SelectContext(ctx, &expenses,
		"SELECT * FROM expenses WHERE date >= $1 AND date < $2 ORDER BY date", from, to)
	return expenses, err
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
	return err
}
