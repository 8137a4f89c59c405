package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTransition rejects a status move the progression does not allow.
var ErrInvalidTransition = errors.New("invalid order status transition")

// OrderService runs the back-office order board and the kitchen display.
type OrderService struct {
	store     *store.Store
	publisher *broker.EventPublisher
	lateAfter time.Duration
	logger    *zap.Logger
}

func NewOrderService(store *store.Store, publisher *broker.EventPublisher, lateAfter time.Duration) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		lateAfter: lateAfter,
		logger:    util.GetLogger(),
	}
}

// Get fetches a single order.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

// ListByStatus lists orders in one status column, newest first.
func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("unknown order status: %q", status)
	}
	return s.store.GetOrdersByStatus(ctx, status)
}

// Board loads every active-status column of the admin order board.
func (s *OrderService) Board(ctx context.Context) (map[string][]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Board")
	defer span.End()

	board := make(map[string][]models.Order)
	for _, status := range models.ActiveStatuses() {
		orders, err := s.store.GetOrdersByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		board[status] = orders
	}
	return board, nil
}

// ListByPhone lists a customer's order history.
func (s *OrderService) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	return s.store.GetOrdersByPhone(ctx, phone)
}

// Advance moves an order one step along the fixed progression. Terminal
// orders cannot move.
func (s *OrderService) Advance(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Advance")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next := models.NextStatus(order.Status)
	if next == "" {
		return nil, fmt.Errorf("order %s is %s and cannot advance: %w", orderID, order.Status, ErrInvalidTransition)
	}

	return s.transition(ctx, order, next)
}

// Cancel cancels an order. Only pending orders can be cancelled; once the
// kitchen confirmed, the board must walk the order forward instead.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Cancel")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !models.CanCancel(order.Status) {
		return nil, fmt.Errorf("order %s is %s and cannot be cancelled: %w", orderID, order.Status, ErrInvalidTransition)
	}

	updated, err := s.transition(ctx, order, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	util.OrdersCancelledTotal.Inc()
	return updated, nil
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, to string) (*models.Order, error) {
	from := order.Status
	if err := s.store.UpdateOrderStatus(ctx, order.ID, to); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = to

	util.OrderStatusChangesTotal.WithLabelValues(to).Inc()

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID: order.ID,
		From:    from,
		To:      to,
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", from),
		zap.String("to", to))
	return order, nil
}

// KitchenTicket is one kitchen display entry with its age.
type KitchenTicket struct {
	models.Order
	ElapsedMinutes int  `json:"elapsed_minutes"`
	Late           bool `json:"late"`
}

// KitchenBoard returns pending and preparing orders, oldest first, flagging
// the ones past the lateness threshold.
func (s *OrderService) KitchenBoard(ctx context.Context) ([]KitchenTicket, error) {
	orders, err := s.store.GetKitchenOrders(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tickets := make([]KitchenTicket, 0, len(orders))
	late := 0
	for _, o := range orders {
		age := now.Sub(o.CreatedAt)
		t := KitchenTicket{
			Order:          o,
			ElapsedMinutes: int(age.Minutes()),
			Late:           age >= s.lateAfter,
		}
		if t.Late {
			late++
		}
		tickets = append(tickets, t)
	}

	util.KitchenBacklogGauge.Set(float64(len(tickets)))
	util.KitchenLateOrdersGauge.Set(float64(late))
	return tickets, nil
}
