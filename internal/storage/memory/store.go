// Package memory is a mutex-guarded store with the same transactional
// semantics as the postgres layer. It backs the service and property tests
// and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gocampus/campus-carpool/internal/domain/booking"
	"github.com/gocampus/campus-carpool/internal/domain/identifier"
	"github.com/gocampus/campus-carpool/internal/domain/ride"
	"github.com/gocampus/campus-carpool/internal/domain/vehicle"
)

// Store holds all entities behind one mutex; the lock is the atomic unit.
// Per-entity views expose the repository interfaces over the shared state.
type Store struct {
	mu       sync.Mutex
	rides    map[string]*ride.Ride
	bookings map[string]*booking.Booking
	vehicles map[string]*vehicle.Vehicle
	seqs     map[identifier.Kind]int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		rides:    make(map[string]*ride.Ride),
		bookings: make(map[string]*booking.Booking),
		vehicles: make(map[string]*vehicle.Vehicle),
		seqs:     make(map[identifier.Kind]int64),
	}
}

// Rides returns the ride.Repository view
func (s *Store) Rides() ride.Repository {
	return &rideRepo{s}
}

// Bookings returns the booking.Repository view
func (s *Store) Bookings() booking.Repository {
	return &bookingRepo{s}
}

// Vehicles returns the vehicle.Registry view
func (s *Store) Vehicles() vehicle.Registry {
	return &vehicleRegistry{s}
}

// Next implements identifier.Allocator
func (s *Store) Next(_ context.Context, kind identifier.Kind) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextLocked(kind)
}

func (s *Store) nextLocked(kind identifier.Kind) (string, error) {
	if _, err := identifier.Prefix(kind); err != nil {
		return "", err
	}
	s.seqs[kind]++
	return identifier.Format(kind, s.seqs[kind])
}

type rideRepo struct {
	s *Store
}

func (r *rideRepo) Create(_ context.Context, rd *ride.Ride) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rd
	r.s.rides[rd.ID] = &cp
	return nil
}

func (r *rideRepo) GetByID(_ context.Context, id string) (*ride.Ride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.rides[id]
	if !ok {
		return nil, ride.ErrNotFound
	}
	cp := *rd
	return &cp, nil
}

func (r *rideRepo) ListOpen(_ context.Context) ([]*ride.Ride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ride.Ride
	for _, rd := range r.s.rides {
		if rd.Bookable() {
			cp := *rd
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

func (r *rideRepo) ListByDriver(_ context.Context, driverID string) ([]*ride.Ride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*ride.Ride
	for _, rd := range r.s.rides {
		if rd.DriverID == driverID {
			cp := *rd
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *rideRepo) UpdateStatus(_ context.Context, id string, from, to ride.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.rides[id]
	if !ok {
		return ride.ErrNotFound
	}
	if rd.Status != from || !from.CanTransitionTo(to) {
		return ride.ErrInvalidTransition
	}
	rd.Status = to
	rd.UpdatedAt = time.Now()
	return nil
}

func (r *rideRepo) CancelCascade(_ context.Context, id string, reason ride.Status) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.rides[id]
	if !ok {
		return 0, ride.ErrNotFound
	}
	if rd.Status.IsTerminal() || !reason.IsCancellation() {
		return 0, ride.ErrInvalidTransition
	}
	rd.Status = reason
	rd.UpdatedAt = time.Now()

	cancelled := 0
	for _, b := range r.s.bookings {
		if b.RideID == id && !b.Status.IsTerminal() {
			b.Status = booking.StatusCancelled
			b.UpdatedAt = rd.UpdatedAt
			cancelled++
		}
	}
	return cancelled, nil
}

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) CreateWithSeatDebit(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.rides[b.RideID]
	if !ok {
		return ride.ErrNotFound
	}
	if err := rd.CanBook(b.SeatsBooked); err != nil {
		return err
	}
	id, err := r.s.nextLocked(identifier.KindBooking)
	if err != nil {
		return err
	}
	b.ID = id
	cp := *b
	r.s.bookings[id] = &cp
	rd.AvailableSeats -= b.SeatsBooked
	rd.UpdatedAt = time.Now()
	return nil
}

func (r *bookingRepo) CancelWithSeatCredit(_ context.Context, id string, reason booking.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if b.Status.IsTerminal() {
		return booking.ErrAlreadyCancelled
	}
	if !reason.IsCancellation() {
		return booking.ErrInvalidTransition
	}
	rd, ok := r.s.rides[b.RideID]
	if !ok {
		return ride.ErrNotFound
	}
	if rd.AvailableSeats+b.SeatsBooked > rd.SeatsOffered {
		return ride.ErrSeatOverflow
	}
	b.Status = reason
	b.UpdatedAt = time.Now()
	rd.AvailableSeats += b.SeatsBooked
	rd.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id string, from, to booking.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if b.Status != from || !from.CanTransitionTo(to) {
		return booking.ErrInvalidTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	return nil
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *bookingRepo) ListByRide(_ context.Context, rideID string) ([]*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if b.RideID == rideID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bookingRepo) ListByPassenger(_ context.Context, passengerID string) ([]*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if b.PassengerID == passengerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type vehicleRegistry struct {
	s *Store
}

func (r *vehicleRegistry) Register(_ context.Context, v *vehicle.Vehicle) error {
	if err := v.IsValid(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.vehicles {
		if existing.DriverID == v.DriverID && existing.Status == vehicle.StatusActive {
			existing.Status = vehicle.StatusInactive
			existing.UpdatedAt = time.Now()
		}
	}
	id, err := r.s.nextLocked(identifier.KindVehicle)
	if err != nil {
		return err
	}
	v.ID = id
	v.Status = vehicle.StatusActive
	cp := *v
	r.s.vehicles[id] = &cp
	return nil
}

func (r *vehicleRegistry) ActiveVehicle(_ context.Context, driverID string) (*vehicle.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.vehicles {
		if v.DriverID == driverID && v.Status == vehicle.StatusActive {
			cp := *v
			return &cp, nil
		}
	}
	return nil, vehicle.ErrNoActiveVehicle
}
