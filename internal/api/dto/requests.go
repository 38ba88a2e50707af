package dto

import (
	"time"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/internal/service/ridelifecycle"
)

// LocationPayload carries a coordinate pair with an optional display address
type LocationPayload struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address"`
}

// CreateRideRequest represents a driver publishing a ride. Any
// client-supplied arrival estimate is ignored; the server computes it.
type CreateRideRequest struct {
	DriverID      string          `json:"driver_id" binding:"required"`
	Origin        LocationPayload `json:"origin" binding:"required"`
	Destination   LocationPayload `json:"destination" binding:"required"`
	DepartureTime time.Time       `json:"departure_time" binding:"required"`
	SeatsOffered  int             `json:"seats_offered" binding:"required"`
}

// UpdateRideStatusRequest advances the ride state machine
type UpdateRideStatusRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// CancelRideRequest cancels a ride with an optional reason status
type CancelRideRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	Reason   string `json:"reason" binding:"omitempty,oneof=cancelled driver_cancelled"`
}

// CreateBookingRequest represents a passenger booking seats on a ride
type CreateBookingRequest struct {
	RideID          string `json:"ride_id" binding:"required"`
	PassengerID     string `json:"passenger_id" binding:"required"`
	Seats           int    `json:"seats" binding:"required"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}

// CancelBookingRequest cancels a booking on behalf of the acting user
type CancelBookingRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

// UpdateBookingStatusRequest moves a booking along the non-cancellation
// part of its state machine (driver only)
type UpdateBookingStatusRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// RegisterVehicleRequest registers a driver's vehicle
type RegisterVehicleRequest struct {
	DriverID     string `json:"driver_id" binding:"required"`
	Model        string `json:"model"`
	PlateNumber  string `json:"plate_number"`
	SeatCapacity int    `json:"seat_capacity" binding:"required"`
}

// RideWithMetadataResponse pairs a stored ride with the trip metadata
// computed at creation for immediate client display
type RideWithMetadataResponse struct {
	Ride     *ride.Ride             `json:"ride"`
	Metadata *ridelifecycle.Metadata `json:"metadata"`
}

// BookingResponse wraps a booking
type BookingResponse struct {
	Booking *booking.Booking `json:"booking"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}
