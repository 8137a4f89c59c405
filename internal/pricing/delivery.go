package pricing

import "storefront-service/internal/models"

// FeeMode selects how the delivery fee is determined.
type FeeMode int

const (
	// FeeModeFixed applies a single store-wide fee; distance and zones are
	// ignored.
	FeeModeFixed FeeMode = iota
	// FeeModeDistance looks the fee up in distance-tiered zones.
	FeeModeDistance
)

// FeeModeFor derives the mode from the settings row: a configured fixed fee
// wins over zones.
func FeeModeFor(settings *models.StoreSettings) FeeMode {
	if settings != nil && settings.DeliveryFee != nil {
		return FeeModeFixed
	}
	return FeeModeDistance
}

// ResolveFee determines the delivery fee in centavos.
//
// Zones must be sorted ascending by min_distance; matching is half-open
// [min, max) scanned in ascending order, so contiguous ranges resolve to the
// lowest tier first. A distance equal to the last active zone's max_distance
// still resolves to that zone's fee, tolerating exact-equality at the top of
// the configured range. Anything beyond returns ErrNotServiceable; callers
// must not substitute a default fee.
func ResolveFee(mode FeeMode, fixedFee int64, zones []models.DeliveryZone, distanceKm float64) (int64, error) {
	if mode == FeeModeFixed {
		return fixedFee, nil
	}

	var last *models.DeliveryZone
	for i := range zones {
		z := &zones[i]
		if !z.Active {
			continue
		}
		if distanceKm >= z.MinDistance && distanceKm < z.MaxDistance {
			return z.Fee, nil
		}
		last = z
	}

	if last != nil && distanceKm >= last.MinDistance && distanceKm <= last.MaxDistance {
		return last.Fee, nil
	}

	return 0, ErrNotServiceable
}
