package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormat renders display IDs with their kind prefix and padding
func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		n        int64
		expected string
	}{
		{name: "First ride", kind: KindRide, n: 1, expected: "R001"},
		{name: "First booking", kind: KindBooking, n: 1, expected: "B001"},
		{name: "First vehicle", kind: KindVehicle, n: 1, expected: "V001"},
		{name: "Two digit sequence", kind: KindRide, n: 42, expected: "R042"},
		{name: "Three digit sequence", kind: KindBooking, n: 999, expected: "B999"},
		{name: "Grows past three digits", kind: KindRide, n: 1000, expected: "R1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.kind, tt.n)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFormat_Rejects covers unknown kinds and non-positive sequences
func TestFormat_Rejects(t *testing.T) {
	_, err := Format(Kind("trip"), 1)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Format(KindRide, 0)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Format(KindRide, -3)
	assert.ErrorIs(t, err, ErrMalformed)
}

// TestParse recovers the sequence from a display ID
func TestParse(t *testing.T) {
	n, err := Parse(KindRide, "R001")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Parse(KindBooking, "B1024")
	assert.NoError(t, err)
	assert.Equal(t, int64(1024), n)
}

// TestParse_Rejects covers malformed and cross-kind IDs
func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		id   string
	}{
		{name: "Wrong prefix", kind: KindRide, id: "B001"},
		{name: "Bare prefix", kind: KindRide, id: "R"},
		{name: "Non numeric tail", kind: KindRide, id: "Rabc"},
		{name: "Zero sequence", kind: KindRide, id: "R000"},
		{name: "Empty string", kind: KindBooking, id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.kind, tt.id)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
