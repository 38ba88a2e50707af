// Package geomath holds the pure trip-geometry math: great-circle distance,
// the campus geofence test and the travel-time estimate.
package geomath

import (
	"math"
)

const earthRadiusKm = 6371

// Point is a bare coordinate pair
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm calculates haversine great-circle distance between two points
func DistanceKm(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// WithinGeofence reports whether p lies inside the circle around center
func WithinGeofence(p, center Point, radiusMeters float64) bool {
	return DistanceKm(p, center) <= radiusMeters/1000
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
