package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rideRow(id, status string) *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "driver_id", "vehicle_id",
		"origin_lat", "origin_lng", "origin_address",
		"dest_lat", "dest_lng", "dest_address",
		"departure_time", "estimated_arrival",
		"seats_offered", "available_seats", "status",
		"created_at", "updated_at",
	}).AddRow(
		id, "driver-1", "V001",
		16.38481, 120.59396, "Campus Gate",
		16.43481, 120.59396, "Downtown",
		now.Add(2*time.Hour), now.Add(2*time.Hour+30*time.Minute),
		3, 3, status,
		now, now,
	)
}

// TestGetByID scans the full row back into the entity
func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM rides WHERE id = \$1`).
		WithArgs("R001").
		WillReturnRows(rideRow("R001", "posted"))

	repo := NewRideRepository(db)
	r, err := repo.GetByID(context.Background(), "R001")

	require.NoError(t, err)
	assert.Equal(t, "R001", r.ID)
	assert.Equal(t, ride.StatusPosted, r.Status)
	assert.Equal(t, 16.38481, r.Origin.Latitude)
	assert.Equal(t, 3, r.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetByID_NotFound maps no rows to the domain sentinel
func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM rides WHERE id = \$1`).
		WithArgs("R999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewRideRepository(db)
	_, err = repo.GetByID(context.Background(), "R999")

	assert.ErrorIs(t, err, ride.ErrNotFound)
}

// TestUpdateStatus_Commits locks the row, compares the stored status and
// writes the new one
func TestUpdateStatus_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("posted"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET status = $2`)).
		WithArgs("R001", "accepted").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRideRepository(db)
	err = repo.UpdateStatus(context.Background(), "R001", ride.StatusPosted, ride.StatusAccepted)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateStatus_LostRace rolls back when a concurrent transition got
// there first
func TestUpdateStatus_LostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
	mock.ExpectRollback()

	repo := NewRideRepository(db)
	err = repo.UpdateStatus(context.Background(), "R001", ride.StatusPosted, ride.StatusAccepted)

	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCancelCascade_Commits terminates the ride and its live bookings in
// one transaction, reporting the cascade size
func TestCancelCascade_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("posted"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET status = $2`)).
		WithArgs("R001", "driver_cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewRideRepository(db)
	cancelled, err := repo.CancelCascade(context.Background(), "R001", ride.StatusDriverCancelled)

	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCancelCascade_TerminalRide rolls back without touching bookings
func TestCancelCascade_TerminalRide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))
	mock.ExpectRollback()

	repo := NewRideRepository(db)
	_, err = repo.CancelCascade(context.Background(), "R001", ride.StatusCancelled)

	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCancelCascade_RejectsNonCancellation never opens a transaction
func TestCancelCascade_RejectsNonCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRideRepository(db)
	_, err = repo.CancelCascade(context.Background(), "R001", ride.StatusCompleted)

	assert.ErrorIs(t, err, ride.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
