package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
)

const rideColumns = `
	id, driver_id, vehicle_id,
	origin_lat, origin_lng, origin_address,
	dest_lat, dest_lng, dest_address,
	departure_time, estimated_arrival,
	seats_offered, available_seats, status,
	created_at, updated_at`

// RideRepository implements ride.Repository over PostgreSQL
type RideRepository struct {
	db *sql.DB
}

// NewRideRepository creates a ride repository
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create persists a new ride
func (r *RideRepository) Create(ctx context.Context, rd *ride.Ride) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rides (
			id, driver_id, vehicle_id,
			origin_lat, origin_lng, origin_address,
			dest_lat, dest_lng, dest_address,
			departure_time, estimated_arrival,
			seats_offered, available_seats, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		rd.ID, rd.DriverID, rd.VehicleID,
		rd.Origin.Latitude, rd.Origin.Longitude, rd.Origin.Address,
		rd.Destination.Latitude, rd.Destination.Longitude, rd.Destination.Address,
		rd.DepartureTime, rd.EstimatedArrival,
		rd.SeatsOffered, rd.AvailableSeats, string(rd.Status),
		rd.CreatedAt, rd.UpdatedAt,
	)
	return err
}

// GetByID retrieves a ride by ID
func (r *RideRepository) GetByID(ctx context.Context, id string) (*ride.Ride, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	return scanRide(row)
}

// ListOpen retrieves rides open for booking, soonest departure first
func (r *RideRepository) ListOpen(ctx context.Context) ([]*ride.Ride, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rideColumns+`
		FROM rides
		WHERE status = $1
		ORDER BY departure_time ASC
	`, string(ride.StatusPosted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

// ListByDriver retrieves a driver's rides, newest first
func (r *RideRepository) ListByDriver(ctx context.Context, driverID string) ([]*ride.Ride, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rideColumns+`
		FROM rides
		WHERE driver_id = $1
		ORDER BY created_at DESC
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

// UpdateStatus transitions a ride inside a transaction: the row is locked,
// the stored status compared against the expected one, then updated.
func (r *RideRepository) UpdateStatus(ctx context.Context, id string, from, to ride.Status) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM rides WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return ride.ErrNotFound
		}
		if err != nil {
			return err
		}
		if ride.Status(current) != from || !from.CanTransitionTo(to) {
			return ride.ErrInvalidTransition
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE rides SET status = $2, updated_at = NOW() WHERE id = $1
		`, id, string(to))
		return err
	})
}

// CancelCascade terminates the ride and every non-terminal booking of it in
// one atomic unit. Seats are not restored; the capacity of a terminal ride
// carries no meaning.
func (r *RideRepository) CancelCascade(ctx context.Context, id string, reason ride.Status) (int, error) {
	if !reason.IsCancellation() {
		return 0, ride.ErrInvalidTransition
	}
	var cancelled int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM rides WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return ride.ErrNotFound
		}
		if err != nil {
			return err
		}
		if ride.Status(current).IsTerminal() {
			return ride.ErrInvalidTransition
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE rides SET status = $2, updated_at = NOW() WHERE id = $1
		`, id, string(reason)); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE bookings
			SET status = $2, updated_at = NOW()
			WHERE ride_id = $1 AND status NOT IN ($3, $4, $5, $6, $7)
		`, id, string(booking.StatusCancelled),
			string(booking.StatusCompleted), string(booking.StatusCancelled),
			string(booking.StatusPassengerCancelled), string(booking.StatusDriverCancelled),
			string(booking.StatusNoShow))
		if err != nil {
			return err
		}
		cancelled, err = res.RowsAffected()
		return err
	})
	return int(cancelled), err
}

func scanRide(row *sql.Row) (*ride.Ride, error) {
	var rd ride.Ride
	var status string
	err := row.Scan(
		&rd.ID, &rd.DriverID, &rd.VehicleID,
		&rd.Origin.Latitude, &rd.Origin.Longitude, &rd.Origin.Address,
		&rd.Destination.Latitude, &rd.Destination.Longitude, &rd.Destination.Address,
		&rd.DepartureTime, &rd.EstimatedArrival,
		&rd.SeatsOffered, &rd.AvailableSeats, &status,
		&rd.CreatedAt, &rd.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ride.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rd.Status = ride.Status(status)
	return &rd, nil
}

func collectRides(rows *sql.Rows) ([]*ride.Ride, error) {
	var out []*ride.Ride
	for rows.Next() {
		var rd ride.Ride
		var status string
		if err := rows.Scan(
			&rd.ID, &rd.DriverID, &rd.VehicleID,
			&rd.Origin.Latitude, &rd.Origin.Longitude, &rd.Origin.Address,
			&rd.Destination.Latitude, &rd.Destination.Longitude, &rd.Destination.Address,
			&rd.DepartureTime, &rd.EstimatedArrival,
			&rd.SeatsOffered, &rd.AvailableSeats, &status,
			&rd.CreatedAt, &rd.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rd.Status = ride.Status(status)
		out = append(out, &rd)
	}
	return out, rows.Err()
}
