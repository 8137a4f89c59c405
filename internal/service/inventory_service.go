package service

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// InventoryService tracks stock items, their movements and day-to-day
// expenses.
type InventoryService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewInventoryService(store *store.Store) *InventoryService {
	return &InventoryService{store: store, logger: util.GetLogger()}
}

// StockItem is an inventory row with its low-stock flag resolved.
type StockItem struct {
	models.InventoryItem
	LowStock bool `json:"low_stock"`
}

// ListItems returns the stock table with low-stock alerts applied.
func (s *InventoryService) ListItems(ctx context.Context) ([]StockItem, error) {
	items, err := s.store.ListInventoryItems(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]StockItem, 0, len(items))
	for _, it := range items {
		out = append(out, StockItem{
			InventoryItem: it,
			LowStock:      it.MinStockAlert > 0 && it.Quantity <= it.MinStockAlert,
		})
	}
	return out, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	if item.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if item.Unit == "" {
		return fmt.Errorf("item unit is required")
	}
	return s.store.CreateInventoryItem(ctx, item)
}

// RecordMovement applies a stock movement. Purchases must carry a unit cost;
// usage quantities are entered positive and subtracted.
func (s *InventoryService) RecordMovement(ctx context.Context, txn *models.InventoryTransaction) error {
	ctx, span := util.StartSpan(ctx, "InventoryService.RecordMovement")
	defer span.End()

	switch txn.Type {
	case models.InventoryTxPurchase:
		if txn.UnitCost == nil || *txn.UnitCost < 0 {
			return fmt.Errorf("purchase requires a unit cost")
		}
	case models.InventoryTxAdjustment, models.InventoryTxUsage:
	default:
		return fmt.Errorf("unknown movement type: %q", txn.Type)
	}
	if txn.Quantity <= 0 {
		return fmt.Errorf("movement quantity must be positive")
	}

	if err := s.store.RecordInventoryTransaction(ctx, txn); err != nil {
		return err
	}

	s.logger.Info("Inventory movement recorded",
		zap.String("item_id", txn.ItemID),
		zap.String("type", txn.Type),
		zap.Float64("quantity", txn.Quantity))
	return nil
}

func (s *InventoryService) ListMovements(ctx context.Context, itemID string) ([]models.InventoryTransaction, error) {
	return s.store.ListInventoryTransactions(ctx, itemID)
}

func (s *InventoryService) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.Description == "" {
		return fmt.Errorf("expense description is required")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	return s.store.CreateExpense(ctx, e)
}

func (s *InventoryService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

func (s *InventoryService) DeleteExpense(ctx context.Context, id string) error {
	return s.store.DeleteExpense(ctx, id)
}
