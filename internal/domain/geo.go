package domain

import "github.com/umahmood/haversine"

// DistanceKm returns the great-circle distance in kilometers between two
// WGS-84 coordinate pairs (haversine formula, Earth radius 6371 km). It is
// pure and symmetric, and zero for identical points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lng1},
		haversine.Coord{Lat: lat2, Lon: lng2},
	)
	return km
}
