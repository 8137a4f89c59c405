package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyCart blocks checkout when the session cart has no lines.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService turns a session cart into a placed order. It is the only
// writer of orders and the only caller of the coupon redeem path.
type CheckoutService struct {
	store     *store.Store
	redis     *redisclient.Client
	settings  *SettingsService
	publisher *broker.EventPublisher
	whatsapp  *WhatsAppBuilder
	loc       *time.Location
	logger    *zap.Logger
}

func NewCheckoutService(
	store *store.Store,
	redis *redisclient.Client,
	settings *SettingsService,
	publisher *broker.EventPublisher,
	whatsapp *WhatsAppBuilder,
	loc *time.Location,
) *CheckoutService {
	return &CheckoutService{
		store:     store,
		redis:     redis,
		settings:  settings,
		publisher: publisher,
		whatsapp:  whatsapp,
		loc:       loc,
		logger:    util.GetLogger(),
	}
}

// CheckoutRequest carries everything the customer submits at checkout.
// Lat/Lng come from the storefront's address picker and are required only
// in distance-fee mode.
type CheckoutRequest struct {
	CustomerName    string   `json:"customer_name" binding:"required"`
	CustomerPhone   string   `json:"customer_phone" binding:"required"`
	CustomerAddress string   `json:"customer_address"`
	PaymentMethod   string   `json:"payment_method" binding:"required,oneof=pix cartao dinheiro"`
	CouponCode      string   `json:"coupon_code"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
}

// CheckoutResponse is the order summary returned to the storefront together
// with the WhatsApp handoff link.
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	Discount    int64  `json:"discount"`
	Total       int64  `json:"total"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Checkout validates the whole order server-side and commits it. Every
// amount is recomputed from the stored cart; nothing client-sent is trusted
// for money. On any rejection the cart is left untouched so the customer
// can fix the problem and retry.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()

	st, err := s.settings.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !st.IsOpen {
		util.CheckoutRejectedTotal.WithLabelValues("store_closed").Inc()
		return nil, pricing.ErrStoreClosed
	}

	items, err := s.redis.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart := &pricing.Cart{Items: items}
	if len(cart.Items) == 0 {
		util.CheckoutRejectedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	subtotal := cart.Subtotal()

	fee, err := s.resolveDeliveryFee(ctx, req)
	if err != nil {
		if errors.Is(err, pricing.ErrNotServiceable) {
			util.CheckoutRejectedTotal.WithLabelValues("not_serviceable").Inc()
		} else {
			util.CheckoutRejectedTotal.WithLabelValues("delivery_fee_unresolved").Inc()
		}
		return nil, err
	}

	var (
		discount int64
		coupon   *models.Coupon
	)
	if req.CouponCode != "" {
		coupon, err = s.store.GetCouponByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		discount, err = pricing.ValidateCoupon(coupon, subtotal, time.Now().In(s.loc))
		if err != nil {
			util.CheckoutRejectedTotal.WithLabelValues("coupon").Inc()
			return nil, err
		}
	}

	total, err := pricing.ComposeTotal(subtotal, &fee, discount)
	if err != nil {
		return nil, err
	}

	// Reserve the coupon use before writing the order, and give it back if
	// the insert fails. The conditional update is what makes concurrent
	// redemptions of a nearly-exhausted coupon safe.
	if coupon != nil {
		redeemed, err := s.store.RedeemCoupon(ctx, coupon.ID)
		if err != nil {
			return nil, err
		}
		if !redeemed {
			util.CheckoutRejectedTotal.WithLabelValues("coupon").Inc()
			return nil, &pricing.CouponError{Reason: pricing.CouponExhausted, Code: coupon.Code}
		}
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         cart.Lines(),
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Discount:      discount,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
	}
	if req.CustomerAddress != "" {
		order.CustomerAddress = &req.CustomerAddress
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = &coupon.Code
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		if coupon != nil {
			if relErr := s.store.ReleaseCouponUse(ctx, coupon.ID); relErr != nil {
				s.logger.Error("Failed to release coupon use after order insert failure",
					zap.String("coupon_id", coupon.ID), zap.Error(relErr))
			}
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.redis.DeleteCart(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	util.OrdersPlacedTotal.Inc()
	if coupon != nil {
		util.CouponRedemptionsTotal.Inc()
	}

	s.publishOrderPlaced(ctx, order)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.String("payment_method", order.PaymentMethod))

	return &CheckoutResponse{
		OrderID:     order.ID,
		Status:      order.Status,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Discount:    order.Discount,
		Total:       order.Total,
		WhatsAppURL: s.whatsapp.OrderURL(order),
	}, nil
}

// resolveDeliveryFee computes the fee under the configured mode. Missing
// coordinates in distance mode are an unresolved fee, never a zero fee.
func (s *CheckoutService) resolveDeliveryFee(ctx context.Context, req *CheckoutRequest) (int64, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}

	mode := pricing.FeeModeFor(settings)
	if mode == pricing.FeeModeFixed {
		return *settings.DeliveryFee, nil
	}

	if req.Lat == nil || req.Lng == nil {
		return 0, pricing.ErrDeliveryFeeUnresolved
	}
	if settings.StoreLat == nil || settings.StoreLng == nil {
		return 0, pricing.ErrDeliveryFeeUnresolved
	}

	zones, err := s.store.GetActiveZones(ctx)
	if err != nil {
		return 0, err
	}

	distance := pricing.DistanceKm(*settings.StoreLat, *settings.StoreLng, *req.Lat, *req.Lng)
	return pricing.ResolveFee(mode, 0, zones, distance)
}

func (s *CheckoutService) publishOrderPlaced(ctx context.Context, order *models.Order) {
	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Items:         order.Items,
	}
	if order.CouponCode != nil {
		event.CouponCode = *order.CouponCode
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event",
			zap.String("order_id", order.ID), zap.Error(err))
	}
}
