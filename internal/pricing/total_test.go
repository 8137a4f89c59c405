package pricing

import (
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeTotalRequiresResolvedFee(t *testing.T) {
	_, err := ComposeTotal(1000, nil, 0)
	assert.ErrorIs(t, err, ErrDeliveryFeeUnresolved)
}

func TestComposeTotalFloorsAtZero(t *testing.T) {
	fee := int64(0)
	total, err := ComposeTotal(1000, &fee, 1500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestComposeTotalPercentageExample(t *testing.T) {
	// subtotal=100.00, 10% coupon, fee=8.00 -> 100 + 8 - 10
	fee := int64(800)
	discount, err := ValidateCoupon(&models.Coupon{
		Code: "TEN", DiscountType: models.DiscountTypePercentage, DiscountValue: 10, Active: true,
	}, 10000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), discount)

	total, err := ComposeTotal(10000, &fee, discount)
	require.NoError(t, err)
	assert.Equal(t, int64(9800), total)
}

func TestCheckoutScenario(t *testing.T) {
	// Cart R$45.00, zone 2-5km fee R$8.00, coupon PROMO10 (10%, no minimum)
	// -> discount R$4.50 -> total R$48.50.
	var cart Cart
	cart.Add(models.CartLineItem{ProductID: "p1", Name: "Burger", UnitPrice: 3000, Quantity: 1})
	cart.Add(models.CartLineItem{ProductID: "p2", Name: "Batata", UnitPrice: 1500, Quantity: 1})

	subtotal := cart.Subtotal()
	require.Equal(t, int64(4500), subtotal)

	zones := []models.DeliveryZone{
		{MinDistance: 0, MaxDistance: 2, Fee: 500, Active: true},
		{MinDistance: 2, MaxDistance: 5, Fee: 800, Active: true},
	}
	fee, err := ResolveFee(FeeModeDistance, 0, zones, 3.2)
	require.NoError(t, err)
	require.Equal(t, int64(800), fee)

	discount, err := ValidateCoupon(&models.Coupon{
		Code: "PROMO10", DiscountType: models.DiscountTypePercentage, DiscountValue: 10, Active: true,
	}, subtotal, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(450), discount)

	total, err := ComposeTotal(subtotal, &fee, discount)
	require.NoError(t, err)
	assert.Equal(t, int64(4850), total)
}
