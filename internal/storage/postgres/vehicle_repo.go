package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gocampus/campus-carpool/internal/domain/identifier"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
)

// VehicleRepository implements vehicle.Registry over PostgreSQL
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a vehicle repository
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Register persists a vehicle as the driver's active one, deactivating any
// previously active vehicle in the same transaction.
func (r *VehicleRepository) Register(ctx context.Context, v *vehicle.Vehicle) error {
	if err := v.IsValid(); err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE vehicles SET status = $2, updated_at = NOW()
			WHERE driver_id = $1 AND status = $3
		`, v.DriverID, string(vehicle.StatusInactive), string(vehicle.StatusActive)); err != nil {
			return err
		}

		id, err := nextID(ctx, tx, identifier.KindVehicle)
		if err != nil {
			return err
		}
		v.ID = id
		v.Status = vehicle.StatusActive

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vehicles (
				id, driver_id, model, plate_number, seat_capacity, status,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, v.ID, v.DriverID, v.Model, v.PlateNumber, v.SeatCapacity, string(v.Status),
			v.CreatedAt, v.UpdatedAt)
		return err
	})
}

// ActiveVehicle returns the driver's active vehicle
func (r *VehicleRepository) ActiveVehicle(ctx context.Context, driverID string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, driver_id, model, plate_number, seat_capacity, status, created_at, updated_at
		FROM vehicles
		WHERE driver_id = $1 AND status = $2
	`, driverID, string(vehicle.StatusActive)).Scan(
		&v.ID, &v.DriverID, &v.Model, &v.PlateNumber, &v.SeatCapacity, &status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vehicle.ErrNoActiveVehicle
	}
	if err != nil {
		return nil, err
	}
	v.Status = vehicle.Status(status)
	return &v, nil
}
