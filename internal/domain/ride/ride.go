package ride

import (
	"time"
)

// Status represents ride status
type Status string

const (
	StatusPosted          Status = "posted"
	StatusAccepted        Status = "accepted"
	StatusWaitingPickup   Status = "waiting_pickup"
	StatusEnRoute         Status = "en_route"
	StatusOngoing         Status = "ongoing"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusDriverCancelled Status = "driver_cancelled"
)

// transitions enumerates the legal status graph. Terminal statuses have no
// outgoing edges.
var transitions = map[Status][]Status{
	StatusPosted:        {StatusAccepted, StatusCancelled, StatusDriverCancelled},
	StatusAccepted:      {StatusWaitingPickup, StatusCancelled, StatusDriverCancelled},
	StatusWaitingPickup: {StatusEnRoute, StatusCancelled, StatusDriverCancelled},
	StatusEnRoute:       {StatusOngoing, StatusCancelled, StatusDriverCancelled},
	StatusOngoing:       {StatusCompleted, StatusCancelled, StatusDriverCancelled},
}

// Location is a geographic point with a best-effort human label. The address
// is display-only; geofencing works on the coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Ride represents a published carpool trip
type Ride struct {
	ID               string    `json:"id"`
	DriverID         string    `json:"driver_id"`
	VehicleID        string    `json:"vehicle_id"`
	Origin           Location  `json:"origin"`
	Destination      Location  `json:"destination"`
	DepartureTime    time.Time `json:"departure_time"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	SeatsOffered     int       `json:"seats_offered"`
	AvailableSeats   int       `json:"available_seats"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsValid validates the status
func (s Status) IsValid() bool {
	switch s {
	case StatusPosted, StatusAccepted, StatusWaitingPickup, StatusEnRoute,
		StatusOngoing, StatusCompleted, StatusCancelled, StatusDriverCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusDriverCancelled:
		return true
	}
	return false
}

// IsCancellation reports whether the status is a cancellation reason
func (s Status) IsCancellation() bool {
	return s == StatusCancelled || s == StatusDriverCancelled
}

// CanTransitionTo checks an edge against the legal status graph
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Bookable reports whether new bookings may be taken against the ride
func (r *Ride) Bookable() bool {
	return r.Status == StatusPosted
}

// CanBook checks whether seats can be debited from the ride
func (r *Ride) CanBook(seats int) error {
	if !r.Bookable() {
		return ErrNotBookable
	}
	if seats > r.AvailableSeats {
		return ErrInsufficientSeats
	}
	return nil
}

// BelongsTo reports whether the ride is owned by the given driver
func (r *Ride) BelongsTo(driverID string) bool {
	return r.DriverID == driverID
}
