package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegister_DeactivatesPrevious swaps the active vehicle inside one
// transaction
func TestRegister_DeactivatesPrevious(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	v := &vehicle.Vehicle{
		DriverID:     "driver-1",
		Model:        "Toyota Vios",
		PlateNumber:  "ABC-1234",
		SeatCapacity: 4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET status = $2`)).
		WithArgs("driver-1", "inactive", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO id_sequences`)).
		WithArgs("vehicle").
		WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(int64(3)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vehicles`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewVehicleRepository(db)
	require.NoError(t, repo.Register(context.Background(), v))

	assert.Equal(t, "V003", v.ID)
	assert.Equal(t, vehicle.StatusActive, v.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRegister_InvalidCapacity fails before touching the database
func TestRegister_InvalidCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(db)
	err = repo.Register(context.Background(), &vehicle.Vehicle{DriverID: "driver-1", SeatCapacity: 0})

	assert.ErrorIs(t, err, vehicle.ErrInvalidCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestActiveVehicle_NoneRegistered maps no rows to the domain sentinel
func TestActiveVehicle_NoneRegistered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM vehicles`).
		WithArgs("driver-1", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewVehicleRepository(db)
	_, err = repo.ActiveVehicle(context.Background(), "driver-1")

	assert.ErrorIs(t, err, vehicle.ErrNoActiveVehicle)
}
