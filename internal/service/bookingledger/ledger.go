// Package bookingledger owns booking creation and cancellation together
// with the atomic seat debit/credit on the parent ride.
package bookingledger

import (
	"context"
	"errors"
	"time"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/pkg/cache"
	apperrors "github.com/gocampus/campus-carpool/pkg/errors"
	"github.com/gocampus/campus-carpool/pkg/logger"
	"github.com/gocampus/campus-carpool/pkg/monitoring"
)

// Deps holds the service dependencies
type Deps struct {
	Bookings    booking.Repository
	Rides       ride.Repository
	Cache       *cache.RideCache
	Monitor     *monitoring.NewRelicApp
	Logger      *logger.Logger
	FarePerSeat float64
	Now         func() time.Time
}

// Service is the seat ledger over bookings
type Service struct {
	deps Deps
}

// NewService creates a booking ledger service
func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{deps: deps}
}

// Create books seats on a ride. The availability check, ID assignment,
// booking insert and seat debit run as one atomic unit serialized per ride
// by the repository.
func (s *Service) Create(ctx context.Context, rideID, passengerID string, seats int, pickup, dropoff string) (*booking.Booking, error) {
	if seats < 1 {
		return nil, apperrors.BadRequest("seats booked must be at least 1", booking.ErrInvalidSeats)
	}

	now := s.deps.Now()
	b := &booking.Booking{
		RideID:          rideID,
		PassengerID:     passengerID,
		SeatsBooked:     seats,
		TotalFare:       float64(seats) * s.deps.FarePerSeat,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		Status:          booking.StatusRequested,
		PaymentStatus:   booking.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.deps.Bookings.CreateWithSeatDebit(ctx, b); err != nil {
		switch {
		case errors.Is(err, ride.ErrNotFound):
			return nil, apperrors.ErrRideNotFound
		case errors.Is(err, ride.ErrNotBookable):
			return nil, apperrors.ErrRideNotBookable
		case errors.Is(err, ride.ErrInsufficientSeats):
			return nil, apperrors.ErrInsufficientSeats
		default:
			return nil, apperrors.Storage(err)
		}
	}

	s.deps.Cache.InvalidateRide(ctx, rideID)
	s.deps.Monitor.RecordBookingCreated(b.ID, rideID, seats, b.TotalFare)
	s.deps.Logger.Info("booking created",
		logger.String("booking_id", b.ID),
		logger.String("ride_id", rideID),
		logger.String("passenger_id", passengerID),
		logger.Int("seats", seats),
		logger.Float64("total_fare", b.TotalFare),
	)

	return b, nil
}

// Cancel terminates a booking with the actor-appropriate reason and credits
// the seats back to the ride, the exact inverse of creation's debit.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID string) error {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}

	r, err := s.deps.Rides.GetByID(ctx, b.RideID)
	if err != nil {
		return apperrors.Storage(err)
	}

	var reason booking.Status
	switch {
	case b.BelongsTo(actorID):
		reason = booking.StatusPassengerCancelled
	case r.BelongsTo(actorID):
		reason = booking.StatusDriverCancelled
	default:
		return apperrors.AccessDenied("booking belongs to another passenger")
	}

	if b.Status.IsTerminal() {
		return apperrors.ErrAlreadyCancelled
	}

	if err := s.deps.Bookings.CancelWithSeatCredit(ctx, bookingID, reason); err != nil {
		if errors.Is(err, booking.ErrAlreadyCancelled) {
			return apperrors.ErrAlreadyCancelled
		}
		return apperrors.Storage(err)
	}

	s.deps.Cache.InvalidateRide(ctx, b.RideID)
	s.deps.Logger.Info("booking cancelled",
		logger.String("booking_id", bookingID),
		logger.String("ride_id", b.RideID),
		logger.String("reason", string(reason)),
		logger.Int("seats_credited", b.SeatsBooked),
	)

	return nil
}

// UpdateStatus moves a booking along the non-cancellation part of its state
// machine (confirm, ongoing, completed, no_show). Only the ride's driver may
// do this; no seats move.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, driverID string, next booking.Status) (*booking.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	r, err := s.deps.Rides.GetByID(ctx, b.RideID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !r.BelongsTo(driverID) {
		return nil, apperrors.AccessDenied("ride belongs to another driver")
	}

	if next.IsCancellation() {
		// cancellations credit seats and must go through Cancel
		return nil, apperrors.BadRequest("use the cancel operation to cancel a booking", nil)
	}
	if !next.IsValid() || !b.Status.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if err := s.deps.Bookings.UpdateStatus(ctx, bookingID, b.Status, next); err != nil {
		if errors.Is(err, booking.ErrInvalidTransition) {
			return nil, apperrors.ErrInvalidStatusTransition
		}
		return nil, apperrors.Storage(err)
	}

	s.deps.Logger.Info("booking status updated",
		logger.String("booking_id", bookingID),
		logger.String("from", string(b.Status)),
		logger.String("to", string(next)),
	)

	b.Status = next
	b.UpdatedAt = s.deps.Now()
	return b, nil
}

// Get returns a booking to its passenger or the ride's driver
func (s *Service) Get(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BelongsTo(actorID) {
		return b, nil
	}
	r, err := s.deps.Rides.GetByID(ctx, b.RideID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !r.BelongsTo(actorID) {
		return nil, apperrors.AccessDenied("booking belongs to another passenger")
	}
	return b, nil
}

// BelongsTo reports whether the booking is owned by the passenger
func (s *Service) BelongsTo(ctx context.Context, bookingID, passengerID string) (bool, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return false, err
	}
	return b.BelongsTo(passengerID), nil
}

// ListByPassenger returns a passenger's bookings, newest first
func (s *Service) ListByPassenger(ctx context.Context, passengerID string) ([]*booking.Booking, error) {
	bookings, err := s.deps.Bookings.ListByPassenger(ctx, passengerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return bookings, nil
}

func (s *Service) load(ctx context.Context, bookingID string) (*booking.Booking, error) {
	b, err := s.deps.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return b, nil
}
