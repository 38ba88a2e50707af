package ride

import (
	"context"
)

// Repository defines the interface for ride data access. Implementations
// must make UpdateStatus a compare-and-set on the current status and
// CancelCascade a single atomic unit spanning the ride row and its
// non-terminal bookings.
type Repository interface {
	// Create persists a new ride
	Create(ctx context.Context, r *Ride) error

	// GetByID retrieves a ride by ID
	GetByID(ctx context.Context, id string) (*Ride, error)

	// ListOpen retrieves rides currently open for booking
	ListOpen(ctx context.Context) ([]*Ride, error)

	// ListByDriver retrieves rides owned by a driver, newest first
	ListByDriver(ctx context.Context, driverID string) ([]*Ride, error)

	// UpdateStatus transitions id from the given status to the next one.
	// Returns ErrInvalidTransition when the stored status no longer
	// matches from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// CancelCascade moves the ride to the terminal reason and every
	// non-terminal booking of the ride to cancelled, atomically. Returns
	// the number of bookings cancelled.
	CancelCascade(ctx context.Context, id string, reason Status) (int, error)
}
