// Package identifier defines the human-readable display IDs used across the
// system: R001 for rides, B001 for bookings, V001 for vehicles. Allocation
// is serialized at the storage layer (a per-kind sequence row), never by
// scanning for the current maximum.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is an entity family with its own sequence
type Kind string

const (
	KindRide    Kind = "ride"
	KindBooking Kind = "booking"
	KindVehicle Kind = "vehicle"
)

var prefixes = map[Kind]string{
	KindRide:    "R",
	KindBooking: "B",
	KindVehicle: "V",
}

var (
	ErrUnknownKind = errors.New("unknown identifier kind")
	ErrMalformed   = errors.New("malformed identifier")
)

// Allocator hands out the next display ID for a kind. Implementations must
// be safe under concurrent allocation of the same kind.
type Allocator interface {
	Next(ctx context.Context, kind Kind) (string, error)
}

// Prefix returns the display prefix for a kind
func Prefix(kind Kind) (string, error) {
	p, ok := prefixes[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	return p, nil
}

// Format renders a sequence number as a display ID. Numbers are padded to
// three digits and grow naturally past R999.
func Format(kind Kind, n int64) (string, error) {
	p, err := Prefix(kind)
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", fmt.Errorf("%w: sequence %d", ErrMalformed, n)
	}
	return fmt.Sprintf("%s%03d", p, n), nil
}

// Parse extracts the sequence number from a display ID of the given kind
func Parse(kind Kind, id string) (int64, error) {
	p, err := Prefix(kind)
	if err != nil {
		return 0, err
	}
	rest, ok := strings.CutPrefix(id, p)
	if !ok || rest == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	return n, nil
}
