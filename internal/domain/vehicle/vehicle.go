package vehicle

import (
	"context"
	"errors"
	"time"
)

// Status represents vehicle registration status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Vehicle represents a driver's registered car. The active vehicle's seat
// capacity is the ceiling for seats offered on a ride.
type Vehicle struct {
	ID           string    `json:"id"`
	DriverID     string    `json:"driver_id"`
	Model        string    `json:"model"`
	PlateNumber  string    `json:"plate_number"`
	SeatCapacity int       `json:"seat_capacity"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Registry defines the vehicle-registry collaborator consulted by ride
// creation. A driver has at most one active vehicle at a time.
type Registry interface {
	// Register persists a vehicle as the driver's active one,
	// deactivating any previously active vehicle.
	Register(ctx context.Context, v *Vehicle) error

	// ActiveVehicle returns the driver's active vehicle, or
	// ErrNoActiveVehicle when the driver has none.
	ActiveVehicle(ctx context.Context, driverID string) (*Vehicle, error)
}

// Errors
var (
	ErrNoActiveVehicle = errors.New("driver has no active vehicle")
	ErrInvalidCapacity = errors.New("seat capacity must be at least 1")
)

// IsValid validates the vehicle entity
func (v *Vehicle) IsValid() error {
	if v.DriverID == "" {
		return errors.New("driver id is required")
	}
	if v.SeatCapacity < 1 {
		return ErrInvalidCapacity
	}
	return nil
}
