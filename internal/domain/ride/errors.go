package ride

import "errors"

var (
	ErrNotFound          = errors.New("ride not found")
	ErrNotBookable       = errors.New("ride is not open for booking")
	ErrInsufficientSeats = errors.New("not enough available seats")
	ErrInvalidTransition = errors.New("invalid ride status transition")
	ErrSeatUnderflow     = errors.New("available seats would fall below zero")
	ErrSeatOverflow      = errors.New("available seats would exceed seats offered")
)
