package booking

import (
	"time"
)

// Status represents booking status
type Status string

const (
	StatusRequested          Status = "requested"
	StatusConfirmed          Status = "confirmed"
	StatusOngoing            Status = "ongoing"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
	StatusPassengerCancelled Status = "passenger_cancelled"
	StatusDriverCancelled    Status = "driver_cancelled"
	StatusNoShow             Status = "no_show"
)

// PaymentStatus is an independent axis carried with the booking. The core
// records it and moves on; settlement lives elsewhere.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentPartial   PaymentStatus = "partial"
)

var transitions = map[Status][]Status{
	StatusRequested: {StatusConfirmed, StatusCancelled, StatusPassengerCancelled, StatusDriverCancelled, StatusNoShow},
	StatusConfirmed: {StatusOngoing, StatusCancelled, StatusPassengerCancelled, StatusDriverCancelled, StatusNoShow},
	StatusOngoing:   {StatusCompleted, StatusCancelled, StatusPassengerCancelled, StatusDriverCancelled, StatusNoShow},
}

// Booking represents seats reserved on a ride by a passenger
type Booking struct {
	ID              string        `json:"id"`
	RideID          string        `json:"ride_id"`
	PassengerID     string        `json:"passenger_id"`
	SeatsBooked     int           `json:"seats_booked"`
	TotalFare       float64       `json:"total_fare"`
	PickupLocation  string        `json:"pickup_location,omitempty"`
	DropoffLocation string        `json:"dropoff_location,omitempty"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsValid validates the status
func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusOngoing, StatusCompleted,
		StatusCancelled, StatusPassengerCancelled, StatusDriverCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusPassengerCancelled,
		StatusDriverCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsCancellation reports whether the status is a cancellation reason.
// Seat credit applies only to these; completed and no_show bookings keep
// their seats debited.
func (s Status) IsCancellation() bool {
	switch s {
	case StatusCancelled, StatusPassengerCancelled, StatusDriverCancelled:
		return true
	}
	return false
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

// BelongsTo reports whether the booking is owned by the given passenger
func (b *Booking) BelongsTo(passengerID string) bool {
	return b.PassengerID == passengerID
}
