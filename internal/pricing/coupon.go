package pricing

import (
	"math"
	"time"

	"storefront-service/internal/models"
)

// ValidateCoupon validates a coupon against the cart subtotal and returns
// the discount in centavos. Checks run in a fixed order and the first
// failure wins. Validation is pure and repeatable; the usage counter is only
// incremented by the store on confirmed placement, never here.
func ValidateCoupon(c *models.Coupon, subtotal int64, now time.Time) (int64, error) {
	if c == nil || !c.Active {
		code := ""
		if c != nil {
			code = c.Code
		}
		return 0, &CouponError{Reason: CouponNotFound, Code: code}
	}

	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return 0, &CouponError{Reason: CouponExpired, Code: c.Code, ExpiredAt: *c.ExpiresAt}
	}

	if c.MinOrderValue != nil && subtotal < *c.MinOrderValue {
		return 0, &CouponError{Reason: CouponBelowMinimum, Code: c.Code, MinOrderValue: *c.MinOrderValue}
	}

	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return 0, &CouponError{Reason: CouponExhausted, Code: c.Code}
	}

	var discount int64
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		discount = int64(math.Round(float64(subtotal) * c.DiscountValue / 100))
	case models.DiscountTypeFixed:
		discount = int64(math.Round(c.DiscountValue))
	default:
		return 0, &CouponError{Reason: CouponNotFound, Code: c.Code}
	}

	// A coupon can make the order free but never drives the total negative
	// on its own.
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return discount, nil
}
