package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CouponService manages coupon administration and the storefront's live
// coupon preview. Redemption itself happens inside checkout.
type CouponService struct {
	store  *store.Store
	loc    *time.Location
	logger *zap.Logger
}

func NewCouponService(store *store.Store, loc *time.Location) *CouponService {
	return &CouponService{
		store:  store,
		loc:    loc,
		logger: util.GetLogger(),
	}
}

// CouponPreview is the storefront response when a customer types a code.
type CouponPreview struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

// Preview validates a code against a subtotal without consuming a use. It is
// safe to call on every keystroke; nothing is reserved until checkout.
func (s *CouponService) Preview(ctx context.Context, code string, subtotal int64) (*CouponPreview, error) {
	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount, err := pricing.ValidateCoupon(coupon, subtotal, time.Now().In(s.loc))
	if err != nil {
		var ce *pricing.CouponError
		if errors.As(err, &ce) {
			util.CouponRejectionsTotal.WithLabelValues(string(ce.Reason)).Inc()
		}
		return nil, err
	}

	return &CouponPreview{Code: coupon.Code, Discount: discount}, nil
}

// List returns every coupon for the admin table, usage counters included.
func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	return s.store.ListCoupons(ctx)
}

// Create validates and stores a new coupon.
func (s *CouponService) Create(ctx context.Context, c *models.Coupon) error {
	if err := validateCouponFields(c); err != nil {
		return err
	}
	if err := s.store.CreateCoupon(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Coupon created", zap.String("code", c.Code))
	return nil
}

// Update edits a coupon's terms. The usage counter is never written here.
func (s *CouponService) Update(ctx context.Context, c *models.Coupon) error {
	if err := validateCouponFields(c); err != nil {
		return err
	}
	return s.store.UpdateCoupon(ctx, c)
}

func (s *CouponService) SetActive(ctx context.Context, id string, active bool) error {
	return s.store.SetCouponActive(ctx, id, active)
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCoupon(ctx, id)
}

func validateCouponFields(c *models.Coupon) error {
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		if c.DiscountValue <= 0 || c.DiscountValue > 100 {
			return fmt.Errorf("percentage discount must be between 0 and 100")
		}
	case models.DiscountTypeFixed:
		if c.DiscountValue <= 0 {
			return fmt.Errorf("fixed discount must be positive")
		}
	default:
		return fmt.Errorf("unknown discount type: %q", c.DiscountType)
	}
	if c.MinOrderValue != nil && *c.MinOrderValue < 0 {
		return fmt.Errorf("minimum order value cannot be negative")
	}
	if c.MaxUses != nil && *c.MaxUses < 1 {
		return fmt.Errorf("max uses must be at least 1")
	}
	return nil
}
