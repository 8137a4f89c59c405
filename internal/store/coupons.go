package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

// GetCouponByCode looks a coupon up by code, case-insensitively. Returns
// (nil, nil) when no such coupon exists so the caller can surface a
// not-found rejection rather than a storage error.
func (s *Store) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.GetContext(ctx, &coupon,
		"SELECT * FROM coupons WHERE code = $1", strings.ToUpper(strings.TrimSpace(code)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListCoupons retrieves all coupons, newest first.
func (s *Store) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := s.db.SelectContext(ctx, &coupons,
		"SELECT * FROM coupons ORDER BY created_at DESC")
	return coupons, err
}

// CreateCoupon inserts a coupon; the code is stored uppercase.
func (s *Store) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_order_value, max_uses, expires_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return s.db.GetContext(ctx, &c.CreatedAt, query,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue, c.MaxUses, c.ExpiresAt, c.Active)
}

// UpdateCoupon updates a coupon's definition. The usage counter is never
// written here.
func (s *Store) UpdateCoupon(ctx context.Context, c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	_, err := s.db.ExecContext(ctx, `
		UPDATE coupons
		SET code = $1, discount_type = $2, discount_value = $3,
		    min_order_value = $4, max_uses = $5, expires_at = $6
		WHERE id = $7`,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue, c.MaxUses, c.ExpiresAt, c.ID)
	return err
}

// SetCouponActive toggles a coupon.
func (s *Store) SetCouponActive(ctx context.Context, id string, active bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE coupons SET active = $1 WHERE id = $2", active, id)
	return err
}

// DeleteCoupon removes a coupon.
func (s *Store) DeleteCoupon(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM coupons WHERE id = $1", id)
	return err
}

// RedeemCoupon atomically increments the usage counter, but only while the
// coupon is active and below its usage limit. Concurrent redemptions near
// max_uses race on this single conditional UPDATE instead of a
// read-then-write, so over-redemption is impossible. Returns false when no
// use was available.
func (s *Store) RedeemCoupon(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE coupons
		SET current_uses = current_uses + 1
		WHERE id = $1 AND active AND (max_uses IS NULL OR current_uses < max_uses)`,
		id)
	if err != nil {
		return false, fmt.Errorf("failed to redeem coupon: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseCouponUse gives one use back after a failed order insert
// (compensation for a reserved redemption).
func (s *Store) ReleaseCouponUse(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE coupons SET current_uses = current_uses - 1 WHERE id = $1 AND current_uses > 0", id)
	return err
}
