package ride

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatus_CanTransitionTo walks the legal status graph edge by edge
func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{name: "Posted to accepted", from: StatusPosted, to: StatusAccepted, allowed: true},
		{name: "Accepted to waiting pickup", from: StatusAccepted, to: StatusWaitingPickup, allowed: true},
		{name: "Waiting pickup to en route", from: StatusWaitingPickup, to: StatusEnRoute, allowed: true},
		{name: "En route to ongoing", from: StatusEnRoute, to: StatusOngoing, allowed: true},
		{name: "Ongoing to completed", from: StatusOngoing, to: StatusCompleted, allowed: true},
		{name: "Posted to cancelled", from: StatusPosted, to: StatusCancelled, allowed: true},
		{name: "Ongoing to driver cancelled", from: StatusOngoing, to: StatusDriverCancelled, allowed: true},
		{name: "Posted cannot skip to ongoing", from: StatusPosted, to: StatusOngoing, allowed: false},
		{name: "Posted cannot skip to completed", from: StatusPosted, to: StatusCompleted, allowed: false},
		{name: "Accepted cannot regress to posted", from: StatusAccepted, to: StatusPosted, allowed: false},
		{name: "Completed is terminal", from: StatusCompleted, to: StatusCancelled, allowed: false},
		{name: "Cancelled is terminal", from: StatusCancelled, to: StatusPosted, allowed: false},
		{name: "Driver cancelled is terminal", from: StatusDriverCancelled, to: StatusAccepted, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// TestStatus_TerminalStatesHaveNoEdges sweeps every pair out of a terminal
func TestStatus_TerminalStatesHaveNoEdges(t *testing.T) {
	all := []Status{
		StatusPosted, StatusAccepted, StatusWaitingPickup, StatusEnRoute,
		StatusOngoing, StatusCompleted, StatusCancelled, StatusDriverCancelled,
	}

	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to),
				"terminal status %s must not transition to %s", from, to)
		}
	}
}

// TestStatus_Classification checks validity, terminality and cancellation
func TestStatus_Classification(t *testing.T) {
	assert.True(t, StatusPosted.IsValid())
	assert.False(t, Status("driving").IsValid())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusOngoing.IsTerminal())

	assert.True(t, StatusCancelled.IsCancellation())
	assert.True(t, StatusDriverCancelled.IsCancellation())
	assert.False(t, StatusCompleted.IsCancellation())
}

// TestRide_CanBook gates seat debits on status and availability
func TestRide_CanBook(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		available int
		seats     int
		expected  error
	}{
		{name: "Open ride with room", status: StatusPosted, available: 3, seats: 2, expected: nil},
		{name: "Exactly the remaining seats", status: StatusPosted, available: 2, seats: 2, expected: nil},
		{name: "One seat too many", status: StatusPosted, available: 1, seats: 2, expected: ErrInsufficientSeats},
		{name: "Sold out", status: StatusPosted, available: 0, seats: 1, expected: ErrInsufficientSeats},
		{name: "Accepted ride is closed", status: StatusAccepted, available: 3, seats: 1, expected: ErrNotBookable},
		{name: "Cancelled ride is closed", status: StatusCancelled, available: 3, seats: 1, expected: ErrNotBookable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Ride{Status: tt.status, SeatsOffered: 4, AvailableSeats: tt.available}
			assert.ErrorIs(t, r.CanBook(tt.seats), tt.expected)
		})
	}
}

// TestRide_BelongsTo checks driver ownership
func TestRide_BelongsTo(t *testing.T) {
	r := &Ride{DriverID: "driver-1"}

	assert.True(t, r.BelongsTo("driver-1"))
	assert.False(t, r.BelongsTo("driver-2"))
}
