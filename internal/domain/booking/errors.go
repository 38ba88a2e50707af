package booking

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrAlreadyCancelled  = errors.New("booking already in a terminal status")
	ErrInvalidSeats      = errors.New("seats booked must be at least 1")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
