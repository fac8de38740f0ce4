package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// CUHK and Hong Kong Cultural Centre.
	const (
		cuhkLat = 22.4172
		cuhkLng = 114.2079
		hkccLat = 22.2939
		hkccLng = 114.1702
	)

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, DistanceKm(cuhkLat, cuhkLng, cuhkLat, cuhkLng))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := DistanceKm(cuhkLat, cuhkLng, hkccLat, hkccLng)
		ba := DistanceKm(hkccLat, hkccLng, cuhkLat, cuhkLng)
		assert.InEpsilon(t, ab, ba, 1e-9)
	})

	t.Run("matches the haversine reference", func(t *testing.T) {
		// Computed with the reference formula, R = 6371 km.
		got := DistanceKm(cuhkLat, cuhkLng, hkccLat, hkccLng)
		assert.InDelta(t, 14.3, got, 0.2)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		got := DistanceKm(22.0, 114.0, 23.0, 114.0)
		assert.InDelta(t, 111.19, got, 0.05)
	})
}
