package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking() *booking.Booking {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return &booking.Booking{
		RideID:        "R001",
		PassengerID:   "passenger-1",
		SeatsBooked:   2,
		TotalFare:     100,
		Status:        booking.StatusRequested,
		PaymentStatus: booking.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TestCreateWithSeatDebit_Commits checks the full transaction: ride lock,
// availability check, sequence bump, insert and debit
func TestCreateWithSeatDebit_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	b := newBooking()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, available_seats FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats"}).AddRow("posted", 3))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO id_sequences`)).
		WithArgs("booking").
		WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(int64(7)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET available_seats = available_seats - $2`)).
		WithArgs("R001", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewBookingRepository(db)
	require.NoError(t, repo.CreateWithSeatDebit(context.Background(), b))

	assert.Equal(t, "B007", b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateWithSeatDebit_Rejections roll the transaction back before any
// row is written
func TestCreateWithSeatDebit_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		available int
		noRow     bool
		expected  error
	}{
		{name: "Ride missing", noRow: true, expected: ride.ErrNotFound},
		{name: "Ride not open", status: "accepted", available: 3, expected: ride.ErrNotBookable},
		{name: "Not enough seats", status: "posted", available: 1, expected: ride.ErrInsufficientSeats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			q := mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, available_seats FROM rides WHERE id = $1 FOR UPDATE`)).
				WithArgs("R001")
			if tt.noRow {
				q.WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats"}))
			} else {
				q.WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats"}).AddRow(tt.status, tt.available))
			}
			mock.ExpectRollback()

			repo := NewBookingRepository(db)
			err = repo.CreateWithSeatDebit(context.Background(), newBooking())

			assert.ErrorIs(t, err, tt.expected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestCancelWithSeatCredit_Commits locks the ride before the booking and
// credits the seats in the same transaction
func TestCancelWithSeatCredit_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ride_id FROM bookings WHERE id = $1`)).
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"ride_id"}).AddRow("R001"))
	mock.ExpectExec(regexp.QuoteMeta(`SELECT id FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seats_booked, status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"seats_booked", "status"}).AddRow(2, "requested"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = $2`)).
		WithArgs("B001", "passenger_cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET available_seats = available_seats + $2`)).
		WithArgs("R001", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewBookingRepository(db)
	err = repo.CancelWithSeatCredit(context.Background(), "B001", booking.StatusPassengerCancelled)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCancelWithSeatCredit_AlreadyTerminal rolls back without crediting
func TestCancelWithSeatCredit_AlreadyTerminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ride_id FROM bookings WHERE id = $1`)).
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"ride_id"}).AddRow("R001"))
	mock.ExpectExec(regexp.QuoteMeta(`SELECT id FROM rides WHERE id = $1 FOR UPDATE`)).
		WithArgs("R001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seats_booked, status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"seats_booked", "status"}).AddRow(2, "completed"))
	mock.ExpectRollback()

	repo := NewBookingRepository(db)
	err = repo.CancelWithSeatCredit(context.Background(), "B001", booking.StatusPassengerCancelled)

	assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCancelWithSeatCredit_RejectsNonCancellation never opens a transaction
func TestCancelWithSeatCredit_RejectsNonCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	err = repo.CancelWithSeatCredit(context.Background(), "B001", booking.StatusCompleted)

	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestBookingUpdateStatus_LostRace fails when the stored status no longer matches
func TestBookingUpdateStatus_LostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs("B001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))
	mock.ExpectRollback()

	repo := NewBookingRepository(db)
	err = repo.UpdateStatus(context.Background(), "B001", booking.StatusRequested, booking.StatusConfirmed)

	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
