// Package storage implements the booking workflow's store interfaces on
// Postgres via pgx.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"drivehub-backend/internal/booking"
	"drivehub-backend/internal/models"
)

// Store gives the booking workflow its car and booking persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetCarByID loads one car. Returns (nil, nil) when no row matches.
func (s *Store) GetCarByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var c models.Car
	err := s.db.QueryRow(ctx,
		`SELECT id, name, brand, type, price_per_day, image_url, available, fuel_type, seats, created_at, updated_at
           FROM cars WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Brand, &c.Type, &c.PricePerDay, &c.ImageURL, &c.Available, &c.FuelType, &c.Seats, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertBooking persists one booking record in a single write.
func (s *Store) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO bookings (id, user_id, car_id, start_date, end_date, total_price, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.CarID, b.StartDate, b.EndDate, b.TotalPrice, b.CreatedAt,
	)
	return err
}

// FindBookingsByUser returns the user's bookings joined with their cars,
// newest first.
func (s *Store) FindBookingsByUser(ctx context.Context, userID uuid.UUID) ([]booking.BookingWithCar, error) {
	rows, err := s.db.Query(ctx,
		`SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date, b.total_price, b.created_at,
                c.id, c.name, c.brand, c.image_url, c.price_per_day
           FROM bookings b
           JOIN cars c ON c.id = b.car_id
          WHERE b.user_id = $1
          ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]booking.BookingWithCar, 0)
	for rows.Next() {
		var it booking.BookingWithCar
		if err := rows.Scan(
			&it.Booking.ID, &it.Booking.UserID, &it.Booking.CarID, &it.Booking.StartDate, &it.Booking.EndDate, &it.Booking.TotalPrice, &it.Booking.CreatedAt,
			&it.Car.ID, &it.Car.Name, &it.Car.Brand, &it.Car.ImageURL, &it.Car.PricePerDay,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// FindAllBookings returns every booking joined with its car and user,
// newest first.
func (s *Store) FindAllBookings(ctx context.Context) ([]booking.BookingWithRefs, error) {
	rows, err := s.db.Query(ctx,
		`SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date, b.total_price, b.created_at,
                c.id, c.name, c.brand, c.image_url, c.price_per_day,
                u.id, u.email, u.full_name
           FROM bookings b
           JOIN cars c ON c.id = b.car_id
           JOIN users u ON u.id = b.user_id
          ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]booking.BookingWithRefs, 0)
	for rows.Next() {
		var it booking.BookingWithRefs
		if err := rows.Scan(
			&it.Booking.ID, &it.Booking.UserID, &it.Booking.CarID, &it.Booking.StartDate, &it.Booking.EndDate, &it.Booking.TotalPrice, &it.Booking.CreatedAt,
			&it.Car.ID, &it.Car.Name, &it.Car.Brand, &it.Car.ImageURL, &it.Car.PricePerDay,
			&it.User.ID, &it.User.Email, &it.User.FullName,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
