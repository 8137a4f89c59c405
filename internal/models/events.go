package models

import "time"

// Event types
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeStoreStatusChanged = "STORE_STATUS_CHANGED"
	EventTypeSettingsUpdated    = "SETTINGS_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is published when checkout commits a new order.
type OrderPlacedEvent struct {
	BaseEvent
	OrderID       string     `json:"order_id"`
	CustomerName  string     `json:"customer_name"`
	Subtotal      int64      `json:"subtotal"`
	DeliveryFee   int64      `json:"delivery_fee"`
	Discount      int64      `json:"discount"`
	Total         int64      `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	CouponCode    string     `json:"coupon_code,omitempty"`
	Items         OrderLines `json:"items"`
}

// OrderStatusChangedEvent is published on every status transition,
// cancellation included.
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// StoreStatusChangedEvent is published when the derived open/closed state
// flips, whether from the manual toggle or the schedule.
type StoreStatusChangedEvent struct {
	BaseEvent
	Open  bool   `json:"open"`
	State string `json:"state"`
}

// SettingsUpdatedEvent is published when the admin edits the settings
// singleton, so caches and status evaluators re-read it.
type SettingsUpdatedEvent struct {
	BaseEvent
}
