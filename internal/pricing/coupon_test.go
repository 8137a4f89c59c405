package pricing

import (
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC)

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID: "c1", Code: "PROMO10",
		DiscountType: models.DiscountTypePercentage, DiscountValue: 10,
		Active: true,
	}
}

func rejectReason(t *testing.T, err error) CouponRejectReason {
	t.Helper()
	var ce *CouponError
	require.ErrorAs(t, err, &ce)
	return ce.Reason
}

func TestValidateCouponNotFound(t *testing.T) {
	_, err := ValidateCoupon(nil, 10000, now)
	assert.Equal(t, CouponNotFound, rejectReason(t, err))

	inactive := activeCoupon()
	inactive.Active = false
	_, err = ValidateCoupon(inactive, 10000, now)
	assert.Equal(t, CouponNotFound, rejectReason(t, err))
}

func TestValidateCouponExpired(t *testing.T) {
	c := activeCoupon()
	past := now.Add(-time.Hour)
	c.ExpiresAt = &past

	_, err := ValidateCoupon(c, 10000, now)
	assert.Equal(t, CouponExpired, rejectReason(t, err))

	var ce *CouponError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, past, ce.ExpiredAt)
}

func TestValidateCouponBelowMinimumCarriesThreshold(t *testing.T) {
	c := activeCoupon()
	min := int64(5000)
	c.MinOrderValue = &min

	_, err := ValidateCoupon(c, 4999, now)
	assert.Equal(t, CouponBelowMinimum, rejectReason(t, err))

	var ce *CouponError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, int64(5000), ce.MinOrderValue)

	discount, err := ValidateCoupon(c, 5000, now)
	require.NoError(t, err)
	assert.Equal(t, int64(500), discount)
}

func TestValidateCouponExhausted(t *testing.T) {
	c := activeCoupon()
	max := 3
	c.MaxUses = &max
	c.CurrentUses = 3

	_, err := ValidateCoupon(c, 10000, now)
	assert.Equal(t, CouponExhausted, rejectReason(t, err))

	c.CurrentUses = 2
	_, err = ValidateCoupon(c, 10000, now)
	assert.NoError(t, err)
}

func TestValidateCouponFirstFailureWins(t *testing.T) {
	// Expired AND below minimum: expiry is checked first.
	c := activeCoupon()
	past := now.Add(-time.Hour)
	min := int64(100000)
	c.ExpiresAt = &past
	c.MinOrderValue = &min

	_, err := ValidateCoupon(c, 10, now)
	assert.Equal(t, CouponExpired, rejectReason(t, err))
}

func TestValidateCouponPercentage(t *testing.T) {
	discount, err := ValidateCoupon(activeCoupon(), 10000, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), discount)
}

func TestValidateCouponFixedClamp(t *testing.T) {
	c := activeCoupon()
	c.DiscountType = models.DiscountTypeFixed
	c.DiscountValue = 1000

	discount, err := ValidateCoupon(c, 50, now)
	require.NoError(t, err)
	assert.Equal(t, int64(50), discount, "fixed discount clamps to the subtotal")
}

func TestValidateCouponIdempotent(t *testing.T) {
	c := activeCoupon()

	first, err := ValidateCoupon(c, 4500, now)
	require.NoError(t, err)
	second, err := ValidateCoupon(c, 4500, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Zero(t, c.CurrentUses, "validation never touches the usage counter")
}

func TestValidateCouponRoundsPercentage(t *testing.T) {
	c := activeCoupon()
	c.DiscountValue = 7.5

	discount, err := ValidateCoupon(c, 999, now)
	require.NoError(t, err)
	assert.Equal(t, int64(75), discount) // 74.925 rounds to 75 centavos
}
