package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gocampus/campus-carpool/internal/domain/identifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocator_Next bumps the per-kind sequence row and formats the ID
func TestAllocator_Next(t *testing.T) {
	tests := []struct {
		name     string
		kind     identifier.Kind
		value    int64
		expected string
	}{
		{name: "First ride", kind: identifier.KindRide, value: 1, expected: "R001"},
		{name: "Later booking", kind: identifier.KindBooking, value: 42, expected: "B042"},
		{name: "Vehicle past three digits", kind: identifier.KindVehicle, value: 1000, expected: "V1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO id_sequences`)).
				WithArgs(string(tt.kind)).
				WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(tt.value))

			got, err := NewAllocator(db).Next(context.Background(), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestAllocator_UnknownKind fails before touching the database
func TestAllocator_UnknownKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewAllocator(db).Next(context.Background(), identifier.Kind("trip"))

	assert.ErrorIs(t, err, identifier.ErrUnknownKind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
