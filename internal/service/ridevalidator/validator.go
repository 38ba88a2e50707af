// Package ridevalidator gates proposed rides before anything is persisted.
// All rules are evaluated; a draft failing several rules reports every
// violation together so the client can fix them in one round trip.
package ridevalidator

import (
	"fmt"
	"time"

	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/internal/service/geomath"
)

// Rule names a validation rule for structured error payloads
type Rule string

const (
	RuleGeofence Rule = "geofence"
	RuleLeadTime Rule = "lead_time"
	RuleHorizon  Rule = "horizon"
	RuleSeats    Rule = "seats"
	RuleDistance Rule = "distance"
)

// Violation is one failed rule with a renderable message
type Violation struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// Draft is a proposed ride before validation
type Draft struct {
	Origin        ride.Location
	Destination   ride.Location
	DepartureTime time.Time
	SeatsOffered  int
}

// Config holds the fixed validation bounds
type Config struct {
	CampusCenter      geomath.Point
	GeofenceRadiusM   float64
	MinLeadTime       time.Duration
	BookingHorizon    time.Duration
	MaxSeatsPerRide   int
	MinTripDistanceKm float64
	MaxTripDistanceKm float64
}

// Validator applies the ride publication rules
type Validator struct {
	cfg Config
	now func() time.Time
}

// New creates a validator; the clock is injectable for boundary tests
func New(cfg Config, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{cfg: cfg, now: now}
}

// Validate checks a draft against the driver's vehicle capacity. The
// returned slice is empty when the draft may be published. Rules are not
// short-circuited.
func (v *Validator) Validate(d Draft, vehicleCapacity int) []Violation {
	var out []Violation
	now := v.now()

	origin := geomath.Point{Latitude: d.Origin.Latitude, Longitude: d.Origin.Longitude}
	dest := geomath.Point{Latitude: d.Destination.Latitude, Longitude: d.Destination.Longitude}

	originIn := geomath.WithinGeofence(origin, v.cfg.CampusCenter, v.cfg.GeofenceRadiusM)
	destIn := geomath.WithinGeofence(dest, v.cfg.CampusCenter, v.cfg.GeofenceRadiusM)
	if !originIn && !destIn {
		out = append(out, Violation{
			Rule:    RuleGeofence,
			Message: fmt.Sprintf("origin or destination must be within %.0f m of campus", v.cfg.GeofenceRadiusM),
		})
	}

	if d.DepartureTime.Before(now.Add(v.cfg.MinLeadTime)) {
		out = append(out, Violation{
			Rule:    RuleLeadTime,
			Message: fmt.Sprintf("departure must be at least %s from now", v.cfg.MinLeadTime),
		})
	}

	if d.DepartureTime.After(now.Add(v.cfg.BookingHorizon)) {
		out = append(out, Violation{
			Rule:    RuleHorizon,
			Message: fmt.Sprintf("departure must be within %s from now", v.cfg.BookingHorizon),
		})
	}

	maxSeats := v.cfg.MaxSeatsPerRide
	if vehicleCapacity < maxSeats {
		maxSeats = vehicleCapacity
	}
	if d.SeatsOffered < 1 || d.SeatsOffered > maxSeats {
		out = append(out, Violation{
			Rule:    RuleSeats,
			Message: fmt.Sprintf("seats offered must be between 1 and %d", maxSeats),
		})
	}

	dist := geomath.DistanceKm(origin, dest)
	if dist < v.cfg.MinTripDistanceKm || dist > v.cfg.MaxTripDistanceKm {
		out = append(out, Violation{
			Rule:    RuleDistance,
			Message: fmt.Sprintf("trip distance %.2f km must be between %.1f and %.0f km", dist, v.cfg.MinTripDistanceKm, v.cfg.MaxTripDistanceKm),
		})
	}

	return out
}

// Messages flattens violations for the error envelope
func Messages(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}
