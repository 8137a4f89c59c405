package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MaxNotesLen bounds the free-text notes accepted on a cart line item.
const MaxNotesLen = 180

// Category groups products on the storefront menu.
type Category struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Icon         *string `db:"icon" json:"icon,omitempty"`
	DisplayOrder int     `db:"display_order" json:"display_order"`
	Active       bool    `db:"active" json:"active"`
}

// Product is a menu item. Placed orders never reference it directly;
// they carry a denormalized snapshot instead.
type Product struct {
	ID           string    `db:"id" json:"id"`
	CategoryID   *string   `db:"category_id" json:"category_id,omitempty"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Price        int64     `db:"price" json:"price"`
	ImageURL     *string   `db:"image_url" json:"image_url,omitempty"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OptionGroup is a named set of customization choices attached to a product.
// max_selections == 1 behaves as single-choice (radio); greater than 1 as
// multi-choice with a cap.
type OptionGroup struct {
	ID            string   `db:"id" json:"id"`
	ProductID     string   `db:"product_id" json:"product_id"`
	Name          string   `db:"name" json:"name"`
	MinSelections int      `db:"min_selections" json:"min_selections"`
	MaxSelections int      `db:"max_selections" json:"max_selections"`
	IsRequired    bool     `db:"is_required" json:"is_required"`
	DisplayOrder  int      `db:"display_order" json:"display_order"`
	Options       []Option `db:"-" json:"options"`
}

// Option is a single additive-surcharge choice inside an OptionGroup.
type Option struct {
	ID           string `db:"id" json:"id"`
	GroupID      string `db:"group_id" json:"group_id"`
	Name         string `db:"name" json:"name"`
	Price        int64  `db:"price" json:"price"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
	Active       bool   `db:"active" json:"active"`
}

// Ingredient is a product component the customer may ask to remove.
type Ingredient struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Removable bool   `db:"removable" json:"removable"`
}

// SelectedOption is a value copy recorded at customization time, so later
// catalog edits never change an in-cart or placed order.
type SelectedOption struct {
	OptionID string `json:"option_id"`
	GroupID  string `json:"group_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
}

// CartLineItem is one cart entry: a product plus its customization and
// quantity. UnitPrice already includes the selected option surcharges.
type CartLineItem struct {
	Key                string           `json:"key"`
	ProductID          string           `json:"product_id"`
	Name               string           `json:"name"`
	UnitPrice          int64            `json:"unit_price"`
	Quantity           int              `json:"quantity"`
	SelectedOptions    []SelectedOption `json:"selected_options,omitempty"`
	RemovedIngredients []string         `json:"removed_ingredients,omitempty"`
	Notes              string           `json:"notes,omitempty"`
}

// MergeKey returns the canonical identity of the line's customization. Two
// lines combine quantities only when product, options, removed ingredients
// and notes are all identical.
func (li CartLineItem) MergeKey() string {
	opts := make([]string, 0, len(li.SelectedOptions))
	for _, o := range li.SelectedOptions {
		opts = append(opts, o.OptionID)
	}
	sort.Strings(opts)

	removed := append([]string(nil), li.RemovedIngredients...)
	sort.Strings(removed)

	return strings.Join([]string{
		li.ProductID,
		strings.Join(opts, ","),
		strings.Join(removed, ","),
		li.Notes,
	}, "|")
}

// Discount types accepted on coupons.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon is an admin-created discount code. Codes are stored uppercase and
// matched case-insensitively. For percentage coupons DiscountValue is the
// percent; for fixed coupons it is the amount in centavos.
type Coupon struct {
	ID            string     `db:"id" json:"id"`
	Code          string     `db:"code" json:"code"`
	DiscountType  string     `db:"discount_type" json:"discount_type"`
	DiscountValue float64    `db:"discount_value" json:"discount_value"`
	MinOrderValue *int64     `db:"min_order_value" json:"min_order_value,omitempty"`
	MaxUses       *int       `db:"max_uses" json:"max_uses,omitempty"`
	CurrentUses   int        `db:"current_uses" json:"current_uses"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Active        bool       `db:"active" json:"active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// DeliveryZone is a distance bracket with a flat fee in centavos. A large
// max_distance sentinel (e.g. 999) means "and above".
type DeliveryZone struct {
	ID          string  `db:"id" json:"id"`
	MinDistance float64 `db:"min_distance" json:"min_distance"`
	MaxDistance float64 `db:"max_distance" json:"max_distance"`
	Fee         int64   `db:"fee" json:"fee"`
	Active      bool    `db:"active" json:"active"`
}

// DayHours is one weekday entry of the schedule. A nil open or close means
// the store does not open that day.
type DayHours struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

// WeeklySchedule maps weekday keys (sun..sat) to opening hours. Stored as
// JSONB on the settings row.
type WeeklySchedule map[string]DayHours

func (w WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *WeeklySchedule) Scan(src interface{}) error {
	if src == nil {
		*w = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan type for WeeklySchedule: %T", src)
	}
	return json.Unmarshal(b, w)
}

// StoreSettings is the singleton configuration row. A non-nil DeliveryFee
// selects fixed-fee mode; nil selects distance-tiered mode.
type StoreSettings struct {
	ID           string         `db:"id" json:"id"`
	IsOpen       bool           `db:"is_open" json:"is_open"`
	OpeningHours WeeklySchedule `db:"opening_hours" json:"opening_hours"`
	StoreLat     *float64       `db:"store_lat" json:"store_lat,omitempty"`
	StoreLng     *float64       `db:"store_lng" json:"store_lng,omitempty"`
	DeliveryFee  *int64         `db:"delivery_fee" json:"delivery_fee,omitempty"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Payment method labels carried on orders. The storefront never infers the
// method from free text; it is a first-class column.
const (
	PaymentPix  = "pix"
	PaymentCard = "cartao"
	PaymentCash = "dinheiro"
)

// PaymentLabel returns the customer-facing label for a payment method.
func PaymentLabel(method string) string {
	switch method {
	case PaymentPix:
		return "PIX"
	case PaymentCard:
		return "Cartão"
	case PaymentCash:
		return "Dinheiro"
	default:
		return method
	}
}

// OrderLine is the immutable item snapshot stored on a placed order.
type OrderLine struct {
	ProductID          string           `json:"product_id"`
	Name               string           `json:"name"`
	UnitPrice          int64            `json:"unit_price"`
	Quantity           int              `json:"quantity"`
	SelectedOptions    []SelectedOption `json:"selected_options,omitempty"`
	RemovedIngredients []string         `json:"removed_ingredients,omitempty"`
	Notes              string           `json:"notes,omitempty"`
}

// OrderLines serializes the item snapshot to a JSONB column.
type OrderLines []OrderLine

func (ol OrderLines) Value() (driver.Value, error) {
	return json.Marshal(ol)
}

func (ol *OrderLines) Scan(src interface{}) error {
	if src == nil {
		*ol = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan type for OrderLines: %T", src)
	}
	return json.Unmarshal(b, ol)
}

// Order is a placed order. Items and totals are immutable history; only the
// status field moves.
type Order struct {
	ID              string     `db:"id" json:"id"`
	CustomerName    string     `db:"customer_name" json:"customer_name"`
	CustomerPhone   string     `db:"customer_phone" json:"customer_phone"`
	CustomerAddress *string    `db:"customer_address" json:"customer_address,omitempty"`
	Items           OrderLines `db:"items" json:"items"`
	Subtotal        int64      `db:"subtotal" json:"subtotal"`
	DeliveryFee     int64      `db:"delivery_fee" json:"delivery_fee"`
	Discount        int64      `db:"discount" json:"discount"`
	Total           int64      `db:"total" json:"total"`
	PaymentMethod   string     `db:"payment_method" json:"payment_method"`
	CouponID        *string    `db:"coupon_id" json:"coupon_id,omitempty"`
	CouponCode      *string    `db:"coupon_code" json:"coupon_code,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// InventoryItem is a stock-control entry, valued at last purchase cost.
type InventoryItem struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Unit          string    `db:"unit" json:"unit"`
	Quantity      float64   `db:"quantity" json:"quantity"`
	LastCost      int64     `db:"last_cost" json:"last_cost"`
	MinStockAlert float64   `db:"min_stock_alert" json:"min_stock_alert"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Inventory transaction kinds.
const (
	InventoryTxPurchase   = "purchase"
	InventoryTxAdjustment = "adjustment"
	InventoryTxUsage      = "usage"
)

// InventoryTransaction records a stock movement. Purchases carry the unit
// cost paid; adjustments and usage do not.
type InventoryTransaction struct {
	ID        string    `db:"id" json:"id"`
	ItemID    string    `db:"item_id" json:"item_id"`
	Type      string    `db:"type" json:"type"`
	Quantity  float64   `db:"quantity" json:"quantity"`
	UnitCost  *int64    `db:"unit_cost" json:"unit_cost,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Expense is a cash outflow entered by staff, used by the daily closing.
type Expense struct {
	ID          string    `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	Amount      int64     `db:"amount" json:"amount"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
