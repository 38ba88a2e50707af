package booking

import (
	"context"
)

// Repository defines the interface for booking data access. The seat
// debit/credit methods are the atomic units of the seat ledger: each spans
// the booking row and the parent ride's available_seats counter and must
// either fully commit or leave both untouched.
type Repository interface {
	// CreateWithSeatDebit assigns the booking its ID, persists it and
	// decrements the parent ride's available seats, all in one atomic
	// unit. The ride row is locked for the duration of the check.
	// Returns ride.ErrNotFound, ride.ErrNotBookable or
	// ride.ErrInsufficientSeats when the ride cannot take the booking.
	CreateWithSeatDebit(ctx context.Context, b *Booking) error

	// CancelWithSeatCredit moves the booking to the terminal reason and
	// increments the parent ride's available seats by the booking's
	// seats, atomically. Returns ErrAlreadyCancelled when the booking is
	// already terminal.
	CancelWithSeatCredit(ctx context.Context, id string, reason Status) error

	// UpdateStatus transitions id from the given status to the next one
	// without touching seats (confirm, ongoing, completed, no_show).
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListByRide retrieves all bookings placed against a ride
	ListByRide(ctx context.Context, rideID string) ([]*Booking, error)

	// ListByPassenger retrieves a passenger's bookings, newest first
	ListByPassenger(ctx context.Context, passengerID string) ([]*Booking, error)
}
