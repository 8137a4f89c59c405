package worker

import (
	"context"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// EventWorker consumes the order-events topic and fans changes out to the
// redis pub/sub channel feeding the websocket hub. Publishing to kafka at
// write time and relaying here keeps the live boards working even when the
// write and the viewer hit different instances.
type EventWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	redis        *redisclient.Client
	logger       *zap.Logger
}

// NewEventWorker creates the worker and registers its event callbacks.
func NewEventWorker(consumer *broker.Consumer, redis *redisclient.Client) *EventWorker {
	w := &EventWorker{
		consumer: consumer,
		redis:    redis,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	eventHandler.OnStoreStatusChanged(w.handleStoreStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *EventWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting event worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *EventWorker) Stop() error {
	w.logger.Info("Stopping event worker")
	return w.consumer.Close()
}

func (w *EventWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	w.logger.Info("Order placed event received",
		zap.String("order_id", event.OrderID),
		zap.Int64("total", event.Total))
	return w.redis.PublishEvent(ctx, event)
}

func (w *EventWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	w.logger.Info("Order status change event received",
		zap.String("order_id", event.OrderID),
		zap.String("from", event.From),
		zap.String("to", event.To))
	return w.redis.PublishEvent(ctx, event)
}

func (w *EventWorker) handleStoreStatusChanged(ctx context.Context, event *models.StoreStatusChangedEvent) error {
	w.logger.Info("Store status change event received",
		zap.String("state", event.State),
		zap.Bool("open", event.Open))
	return w.redis.PublishEvent(ctx, event)
}
