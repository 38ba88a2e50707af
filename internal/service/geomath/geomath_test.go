package geomath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var campus = Point{Latitude: 16.38481, Longitude: 120.59396}

// TestDistanceKm_KnownValues checks the haversine against precomputed trips
func TestDistanceKm_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{
			name:     "Same point",
			a:        campus,
			b:        campus,
			expected: 0,
		},
		{
			name:     "One hundredth of a degree of latitude",
			a:        campus,
			b:        Point{Latitude: campus.Latitude + 0.01, Longitude: campus.Longitude},
			expected: 1.112,
		},
		{
			name:     "Half a degree of latitude",
			a:        campus,
			b:        Point{Latitude: campus.Latitude + 0.5, Longitude: campus.Longitude},
			expected: 55.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.a, tt.b), 0.05)
		})
	}
}

// TestDistanceKm_Symmetric verifies the distance is direction independent
func TestDistanceKm_Symmetric(t *testing.T) {
	a := campus
	b := Point{Latitude: 16.41, Longitude: 120.61}

	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
}

// TestWithinGeofence tests the campus radius check at its boundary
func TestWithinGeofence(t *testing.T) {
	tests := []struct {
		name    string
		point   Point
		radiusM float64
		within  bool
	}{
		{
			name:    "Center itself",
			point:   campus,
			radiusM: 200,
			within:  true,
		},
		{
			name:    "About 111 m north",
			point:   Point{Latitude: campus.Latitude + 0.001, Longitude: campus.Longitude},
			radiusM: 200,
			within:  true,
		},
		{
			name:    "About 334 m north",
			point:   Point{Latitude: campus.Latitude + 0.003, Longitude: campus.Longitude},
			radiusM: 200,
			within:  false,
		},
		{
			name:    "Far away point",
			point:   Point{Latitude: campus.Latitude + 1, Longitude: campus.Longitude},
			radiusM: 200,
			within:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.within, WithinGeofence(tt.point, campus, tt.radiusM))
		})
	}
}
