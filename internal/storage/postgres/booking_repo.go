package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/identifier"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
)

const bookingColumns = `
	id, ride_id, passenger_id, seats_booked, total_fare,
	pickup_location, dropoff_location, status, payment_status,
	created_at, updated_at`

// BookingRepository implements booking.Repository over PostgreSQL
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a booking repository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithSeatDebit books seats in one transaction: the ride row is
// locked, status and availability checked, the booking ID drawn from the
// sequence, the row inserted and the seats debited. Two concurrent bookings
// against the last seat serialize on the row lock; the second sees the
// debited count and fails.
func (r *BookingRepository) CreateWithSeatDebit(ctx context.Context, b *booking.Booking) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var status string
		var available int
		err := tx.QueryRowContext(ctx, `
			SELECT status, available_seats FROM rides WHERE id = $1 FOR UPDATE
		`, b.RideID).Scan(&status, &available)
		if errors.Is(err, sql.ErrNoRows) {
			return ride.ErrNotFound
		}
		if err != nil {
			return err
		}
		if ride.Status(status) != ride.StatusPosted {
			return ride.ErrNotBookable
		}
		if b.SeatsBooked > available {
			return ride.ErrInsufficientSeats
		}

		id, err := nextID(ctx, tx, identifier.KindBooking)
		if err != nil {
			return err
		}
		b.ID = id

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (
				id, ride_id, passenger_id, seats_booked, total_fare,
				pickup_location, dropoff_location, status, payment_status,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			b.ID, b.RideID, b.PassengerID, b.SeatsBooked, b.TotalFare,
			b.PickupLocation, b.DropoffLocation, string(b.Status), string(b.PaymentStatus),
			b.CreatedAt, b.UpdatedAt,
		); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE rides SET available_seats = available_seats - $2, updated_at = NOW() WHERE id = $1
		`, b.RideID, b.SeatsBooked)
		return err
	})
}

// CancelWithSeatCredit terminates a booking and credits its seats back to
// the ride in one transaction. The ride row is locked before the booking
// row, matching the lock order of creation and the cascade, so the two
// cancellation paths cannot deadlock.
func (r *BookingRepository) CancelWithSeatCredit(ctx context.Context, id string, reason booking.Status) error {
	if !reason.IsCancellation() {
		return booking.ErrInvalidTransition
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var rideID string
		err := tx.QueryRowContext(ctx, `SELECT ride_id FROM bookings WHERE id = $1`, id).Scan(&rideID)
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `SELECT id FROM rides WHERE id = $1 FOR UPDATE`, rideID); err != nil {
			return err
		}

		var seats int
		var status string
		err = tx.QueryRowContext(ctx, `
			SELECT seats_booked, status FROM bookings WHERE id = $1 FOR UPDATE
		`, id).Scan(&seats, &status)
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return err
		}
		if booking.Status(status).IsTerminal() {
			return booking.ErrAlreadyCancelled
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
		`, id, string(reason)); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE rides SET available_seats = available_seats + $2, updated_at = NOW() WHERE id = $1
		`, rideID, seats)
		return err
	})
}

// UpdateStatus transitions a booking without touching seats
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to booking.Status) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return err
		}
		if booking.Status(current) != from || !from.CanTransitionTo(to) {
			return booking.ErrInvalidTransition
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
		`, id, string(to))
		return err
	})
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListByRide retrieves all bookings placed against a ride
func (r *BookingRepository) ListByRide(ctx context.Context, rideID string) ([]*booking.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE ride_id = $1 ORDER BY id ASC
	`, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByPassenger retrieves a passenger's bookings, newest first
func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*booking.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC
	`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func scanBooking(row *sql.Row) (*booking.Booking, error) {
	var b booking.Booking
	var status, payment string
	err := row.Scan(
		&b.ID, &b.RideID, &b.PassengerID, &b.SeatsBooked, &b.TotalFare,
		&b.PickupLocation, &b.DropoffLocation, &status, &payment,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = booking.Status(status)
	b.PaymentStatus = booking.PaymentStatus(payment)
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for rows.Next() {
		var b booking.Booking
		var status, payment string
		if err := rows.Scan(
			&b.ID, &b.RideID, &b.PassengerID, &b.SeatsBooked, &b.TotalFare,
			&b.PickupLocation, &b.DropoffLocation, &status, &payment,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Status = booking.Status(status)
		b.PaymentStatus = booking.PaymentStatus(payment)
		out = append(out, &b)
	}
	return out, rows.Err()
}
