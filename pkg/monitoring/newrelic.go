package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if nr == nil || !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if nr == nil || !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr != nil && nr.enabled
}

// Domain event helpers

// RecordRidePublished records a ride passing validation and being persisted
func (nr *NewRelicApp) RecordRidePublished(rideID string, distanceKm float64, durationMinutes int) {
	nr.RecordCustomEvent("RidePublished", map[string]interface{}{
		"ride_id":          rideID,
		"distance_km":      distanceKm,
		"duration_minutes": durationMinutes,
	})
}

// RecordBookingCreated records a successful seat debit
func (nr *NewRelicApp) RecordBookingCreated(bookingID, rideID string, seats int, fare float64) {
	nr.RecordCustomEvent("BookingCreated", map[string]interface{}{
		"booking_id": bookingID,
		"ride_id":    rideID,
		"seats":      seats,
		"fare":       fare,
	})
}

// RecordRideCancelled records a ride cancellation and its cascade size
func (nr *NewRelicApp) RecordRideCancelled(rideID, reason string, bookingsCancelled int) {
	nr.RecordCustomEvent("RideCancelled", map[string]interface{}{
		"ride_id":            rideID,
		"reason":             reason,
		"bookings_cancelled": bookingsCancelled,
	})
}
