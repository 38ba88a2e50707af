// Package ridelifecycle owns ride creation, status transitions and the
// cancellation cascade into bookings.
package ridelifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/identifier"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
	"github.com/gocampus/campus-carpool/internal/service/geomath"
	"github.com/gocampus/campus-carpool/internal/service/ridevalidator"
	"github.com/gocampus/campus-carpool/pkg/cache"
	apperrors "github.com/gocampus/campus-carpool/pkg/errors"
	"github.com/gocampus/campus-carpool/pkg/logger"
	"github.com/gocampus/campus-carpool/pkg/monitoring"
)

// Metadata accompanies a freshly created ride for immediate client display
type Metadata struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Deps holds the service dependencies
type Deps struct {
	Rides     ride.Repository
	Bookings  booking.Repository
	Vehicles  vehicle.Registry
	IDs       identifier.Allocator
	Validator *ridevalidator.Validator
	Estimator *geomath.Estimator
	Cache     *cache.RideCache
	Monitor   *monitoring.NewRelicApp
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service drives the ride state machine
type Service struct {
	deps Deps
}

// NewService creates a ride lifecycle service
func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{deps: deps}
}

// Create validates and publishes a ride for the driver. The travel-time
// estimate is computed exactly once here and persisted; any client-supplied
// duration is ignored.
func (s *Service) Create(ctx context.Context, driverID string, draft ridevalidator.Draft) (*ride.Ride, *Metadata, error) {
	veh, err := s.deps.Vehicles.ActiveVehicle(ctx, driverID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNoActiveVehicle) {
			return nil, nil, apperrors.ErrNoActiveVehicle
		}
		return nil, nil, apperrors.Storage(err)
	}

	if violations := s.deps.Validator.Validate(draft, veh.SeatCapacity); len(violations) > 0 {
		return nil, nil, apperrors.ValidationFailed(ridevalidator.Messages(violations))
	}

	distance := geomath.DistanceKm(
		geomath.Point{Latitude: draft.Origin.Latitude, Longitude: draft.Origin.Longitude},
		geomath.Point{Latitude: draft.Destination.Latitude, Longitude: draft.Destination.Longitude},
	)
	minutes := s.deps.Estimator.EstimateTravelMinutes(distance)

	id, err := s.deps.IDs.Next(ctx, identifier.KindRide)
	if err != nil {
		return nil, nil, apperrors.Storage(err)
	}

	now := s.deps.Now()
	r := &ride.Ride{
		ID:               id,
		DriverID:         driverID,
		VehicleID:        veh.ID,
		Origin:           draft.Origin,
		Destination:      draft.Destination,
		DepartureTime:    draft.DepartureTime,
		EstimatedArrival: draft.DepartureTime.Add(time.Duration(minutes) * time.Minute),
		SeatsOffered:     draft.SeatsOffered,
		AvailableSeats:   draft.SeatsOffered,
		Status:           ride.StatusPosted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.deps.Rides.Create(ctx, r); err != nil {
		return nil, nil, apperrors.Storage(err)
	}

	s.deps.Cache.InvalidateRide(ctx, r.ID)
	s.deps.Monitor.RecordRidePublished(r.ID, distance, minutes)
	s.deps.Logger.Info("ride published",
		logger.String("ride_id", r.ID),
		logger.String("driver_id", driverID),
		logger.Float64("distance_km", distance),
		logger.Int("duration_minutes", minutes),
		logger.Int("seats_offered", r.SeatsOffered),
	)

	return r, &Metadata{DistanceKm: distance, DurationMinutes: minutes}, nil
}

// Get retrieves a ride, serving the cached snapshot when fresh
func (s *Service) Get(ctx context.Context, id string) (*ride.Ride, error) {
	var cached ride.Ride
	if s.deps.Cache.GetRide(ctx, id, &cached) {
		return &cached, nil
	}

	r, err := s.deps.Rides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ride.ErrNotFound) {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, apperrors.Storage(err)
	}

	s.deps.Cache.SetRide(ctx, id, r)
	return r, nil
}

// ListOpen retrieves rides currently open for booking
func (s *Service) ListOpen(ctx context.Context) ([]*ride.Ride, error) {
	var cached []*ride.Ride
	if s.deps.Cache.GetOpenRides(ctx, &cached) {
		return cached, nil
	}

	rides, err := s.deps.Rides.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.deps.Cache.SetOpenRides(ctx, rides)
	return rides, nil
}

// UpdateStatus advances the ride state machine on behalf of its driver.
// Terminal rides reject every transition; non-terminal rides accept only
// edges of the legal graph.
func (s *Service) UpdateStatus(ctx context.Context, rideID, driverID string, next ride.Status) (*ride.Ride, error) {
	r, err := s.load(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !r.BelongsTo(driverID) {
		return nil, apperrors.AccessDenied("ride belongs to another driver")
	}
	if next.IsCancellation() {
		// cancellations cascade into bookings and must go through Cancel
		return nil, apperrors.BadRequest("use the cancel operation to cancel a ride", nil)
	}
	if !next.IsValid() || !r.Status.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if err := s.deps.Rides.UpdateStatus(ctx, rideID, r.Status, next); err != nil {
		if errors.Is(err, ride.ErrInvalidTransition) {
			// lost a race against a concurrent transition
			return nil, apperrors.ErrInvalidStatusTransition
		}
		return nil, apperrors.Storage(err)
	}

	s.deps.Cache.InvalidateRide(ctx, rideID)
	s.deps.Logger.Info("ride status updated",
		logger.String("ride_id", rideID),
		logger.String("from", string(r.Status)),
		logger.String("to", string(next)),
	)

	r.Status = next
	r.UpdatedAt = s.deps.Now()
	return r, nil
}

// Cancel moves the ride to a terminal cancellation reason and, in the same
// atomic unit, cancels every non-terminal booking of the ride. Seats are not
// restored: capacity of a terminal ride is meaningless.
func (s *Service) Cancel(ctx context.Context, rideID, driverID string, reason ride.Status) error {
	if !reason.IsCancellation() {
		return apperrors.BadRequest("cancellation reason must be cancelled or driver_cancelled", nil)
	}

	r, err := s.load(ctx, rideID)
	if err != nil {
		return err
	}
	if !r.BelongsTo(driverID) {
		return apperrors.AccessDenied("ride belongs to another driver")
	}
	if r.Status.IsTerminal() {
		return apperrors.ErrInvalidStatusTransition
	}

	cancelled, err := s.deps.Rides.CancelCascade(ctx, rideID, reason)
	if err != nil {
		if errors.Is(err, ride.ErrInvalidTransition) {
			return apperrors.ErrInvalidStatusTransition
		}
		return apperrors.Storage(err)
	}

	s.deps.Cache.InvalidateRide(ctx, rideID)
	s.deps.Monitor.RecordRideCancelled(rideID, string(reason), cancelled)
	s.deps.Logger.Info("ride cancelled",
		logger.String("ride_id", rideID),
		logger.String("reason", string(reason)),
		logger.Int("bookings_cancelled", cancelled),
	)

	return nil
}

// ListByDriver returns a driver's rides, newest first
func (s *Service) ListByDriver(ctx context.Context, driverID string) ([]*ride.Ride, error) {
	rides, err := s.deps.Rides.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return rides, nil
}

// BelongsTo reports whether the ride is owned by the driver
func (s *Service) BelongsTo(ctx context.Context, rideID, driverID string) (bool, error) {
	r, err := s.load(ctx, rideID)
	if err != nil {
		return false, err
	}
	return r.BelongsTo(driverID), nil
}

// ListBookings returns the bookings on the driver's own ride
func (s *Service) ListBookings(ctx context.Context, rideID, driverID string) ([]*booking.Booking, error) {
	r, err := s.load(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !r.BelongsTo(driverID) {
		return nil, apperrors.AccessDenied("ride belongs to another driver")
	}
	bookings, err := s.deps.Bookings.ListByRide(ctx, rideID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return bookings, nil
}

// load reads the authoritative row, bypassing the cache: every caller is
// about to mutate or gate on the current status.
func (s *Service) load(ctx context.Context, rideID string) (*ride.Ride, error) {
	r, err := s.deps.Rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, ride.ErrNotFound) {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return r, nil
}
