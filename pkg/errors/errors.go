package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code. Expected
// domain failures carry a stable code the client can branch on; violations
// are populated only for validation failures.
type AppError struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
	Status     int      `json:"-"`
	Err        error    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error constructors

// BadRequest creates a 400 error
func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// NotFound creates a 404 error
func NotFound(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// Conflict creates a 409 error
func Conflict(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// ValidationFailed creates a 422 error carrying the full set of violated
// rules; callers never see just the first failure.
func ValidationFailed(violations []string) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "ride validation failed",
		Violations: violations,
		Status:     http.StatusUnprocessableEntity,
	}
}

// AccessDenied creates a 403 ownership-mismatch error
func AccessDenied(message string) *AppError {
	return &AppError{
		Code:    "ACCESS_DENIED",
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// Storage wraps an unexpected persistence failure. The enclosing atomic
// unit has been rolled back; the caller may retry.
func Storage(err error) *AppError {
	return &AppError{
		Code:    "STORAGE_FAILURE",
		Message: "storage operation failed",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Domain-specific errors

var (
	ErrNoActiveVehicle = Conflict("NO_ACTIVE_VEHICLE", "Driver has no active vehicle", nil)

	ErrRideNotFound    = NotFound("RIDE_NOT_FOUND", "Ride not found", nil)
	ErrBookingNotFound = NotFound("BOOKING_NOT_FOUND", "Booking not found", nil)
	ErrVehicleNotFound = NotFound("VEHICLE_NOT_FOUND", "Vehicle not found", nil)

	ErrRideNotBookable   = Conflict("RIDE_NOT_BOOKABLE", "Ride is not open for booking", nil)
	ErrInsufficientSeats = Conflict("INSUFFICIENT_SEATS", "Not enough available seats", nil)
	ErrAlreadyCancelled  = Conflict("ALREADY_CANCELLED", "Booking is already in a terminal status", nil)

	ErrInvalidStatusTransition = Conflict("INVALID_STATUS_TRANSITION", "Requested status transition is not allowed", nil)
)

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError attempts to convert an error to AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage(err)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
