package pricing

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZones() []models.DeliveryZone {
	return []models.DeliveryZone{
		{ID: "z1", MinDistance: 0, MaxDistance: 5, Fee: 1000, Active: true},
		{ID: "z2", MinDistance: 5, MaxDistance: 10, Fee: 2000, Active: true},
	}
}

func TestResolveFeeFixedModeIgnoresZonesAndDistance(t *testing.T) {
	fee, err := ResolveFee(FeeModeFixed, 800, testZones(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(800), fee)

	fee, err = ResolveFee(FeeModeFixed, 0, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)
}

func TestResolveFeeDistanceTiers(t *testing.T) {
	cases := []struct {
		distance float64
		fee      int64
	}{
		{0, 1000},
		{4.9, 1000},
		{5.0, 2000},
		{9.99, 2000},
	}

	for _, tc := range cases {
		fee, err := ResolveFee(FeeModeDistance, 0, testZones(), tc.distance)
		require.NoError(t, err, "distance %v", tc.distance)
		assert.Equal(t, tc.fee, fee, "distance %v", tc.distance)
	}
}

func TestResolveFeeTopBoundaryFallback(t *testing.T) {
	// Exactly at the last zone's upper bound the fallback keeps the address
	// serviceable at the highest tier.
	fee, err := ResolveFee(FeeModeDistance, 0, testZones(), 10.0)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), fee)
}

func TestResolveFeeBeyondAllZones(t *testing.T) {
	_, err := ResolveFee(FeeModeDistance, 0, testZones(), 10.01)
	assert.ErrorIs(t, err, ErrNotServiceable)
}

func TestResolveFeeEmptyZones(t *testing.T) {
	_, err := ResolveFee(FeeModeDistance, 0, nil, 1)
	assert.ErrorIs(t, err, ErrNotServiceable)
}

func TestResolveFeeSkipsInactiveZones(t *testing.T) {
	zones := []models.DeliveryZone{
		{ID: "z1", MinDistance: 0, MaxDistance: 5, Fee: 1000, Active: false},
		{ID: "z2", MinDistance: 5, MaxDistance: 10, Fee: 2000, Active: true},
	}

	_, err := ResolveFee(FeeModeDistance, 0, zones, 3)
	assert.ErrorIs(t, err, ErrNotServiceable)

	fee, err := ResolveFee(FeeModeDistance, 0, zones, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), fee)
}

func TestResolveFeeLowestTierWinsOnContiguousRanges(t *testing.T) {
	fee, err := ResolveFee(FeeModeDistance, 0, testZones(), 5.0)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), fee, "boundary belongs to the upper tier")

	fee, err = ResolveFee(FeeModeDistance, 0, testZones(), 4.999)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fee)
}

func TestResolveFeeOpenEndedSentinelZone(t *testing.T) {
	zones := append(testZones(), models.DeliveryZone{
		ID: "z3", MinDistance: 10, MaxDistance: 999, Fee: 3500, Active: true,
	})

	fee, err := ResolveFee(FeeModeDistance, 0, zones, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), fee)
}

func TestFeeModeFor(t *testing.T) {
	fixed := int64(900)
	assert.Equal(t, FeeModeFixed, FeeModeFor(&models.StoreSettings{DeliveryFee: &fixed}))
	assert.Equal(t, FeeModeDistance, FeeModeFor(&models.StoreSettings{}))
	assert.Equal(t, FeeModeDistance, FeeModeFor(nil))
}
