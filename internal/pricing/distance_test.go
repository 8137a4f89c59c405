package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{-23.5505, -46.6333, -22.9068, -43.1729}, // São Paulo <-> Rio
		{0, 0, 10, 10},
		{-23.5505, -46.6333, -23.5510, -46.6340},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceKmIdentity(t *testing.T) {
	assert.Zero(t, DistanceKm(-23.5505, -46.6333, -23.5505, -46.6333))
}

func TestDistanceKmKnownValue(t *testing.T) {
	// São Paulo to Rio de Janeiro is roughly 360 km great-circle.
	d := DistanceKm(-23.5505, -46.6333, -22.9068, -43.1729)
	assert.InDelta(t, 360, d, 10)
}

func TestDistanceKmShortRange(t *testing.T) {
	// ~1.11 km per 0.01 degree of latitude.
	d := DistanceKm(-23.55, -46.63, -23.56, -46.63)
	assert.InDelta(t, 1.11, d, 0.02)
}
