// Package booking implements the booking workflow: request validation,
// price computation, persistence and read-time status derivation. Handlers
// stay thin; everything with a decision in it lives here.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"drivehub-backend/internal/models"
)

// Identity is the resolved caller identity, produced once by the auth
// middleware and threaded explicitly into privileged operations.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	IsPrivileged bool
}

// CarSummary is the slice of a car attached to booking listings.
type CarSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	ImageURL    string    `json:"image_url"`
	PricePerDay float64   `json:"price_per_day"`
}

// UserSummary is the slice of a user attached to the admin listing.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// BookingWithCar is a stored booking joined with its car.
type BookingWithCar struct {
	Booking models.Booking
	Car     CarSummary
}

// BookingWithRefs is a stored booking joined with its car and user.
type BookingWithRefs struct {
	Booking models.Booking
	Car     CarSummary
	User    UserSummary
}

// UserBooking is a caller-facing booking with its derived status.
type UserBooking struct {
	Booking models.Booking
	Car     CarSummary
	Status  string
}

// AdminBooking is an admin-facing booking with joined references and
// derived status.
type AdminBooking struct {
	Booking models.Booking
	Car     CarSummary
	User    UserSummary
	Status  string
}

// CarStore is the read-only catalog the workflow prices against.
// GetCarByID returns (nil, nil) when no car has that id.
type CarStore interface {
	GetCarByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
}

// BookingStore persists and reads booking records.
type BookingStore interface {
	InsertBooking(ctx context.Context, b *models.Booking) error
	FindBookingsByUser(ctx context.Context, userID uuid.UUID) ([]BookingWithCar, error)
	FindAllBookings(ctx context.Context) ([]BookingWithRefs, error)
}

// CreateBookingInput is the validated request shape, built at the HTTP
// boundary. Zero values stand for missing fields.
type CreateBookingInput struct {
	CarID     uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// Service runs the booking workflow against injected stores.
type Service struct {
	cars     CarStore
	bookings BookingStore
	now      func() time.Time
}

// NewService creates a booking service.
func NewService(cars CarStore, bookings BookingStore) *Service {
	return &Service{cars: cars, bookings: bookings, now: time.Now}
}

// RentalDays converts a date interval to billed days: any partial 24-hour
// period counts as a full day, and the minimum is one day.
func RentalDays(start, end time.Time) int {
	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// CreateBooking validates the request, prices it against the car's daily
// rate and persists the booking. Validation fails fast: the first failing
// check wins. The total price is always recomputed here, never taken from
// client input.
//
// Known gap: there is no overlap check, so two bookings for the same car
// over intersecting ranges can both succeed.
func (s *Service) CreateBooking(ctx context.Context, requesterID uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	if requesterID == uuid.Nil {
		return nil, NewValidationError("requester required")
	}
	if in.CarID == uuid.Nil {
		return nil, NewValidationError("car required")
	}
	if in.StartDate.IsZero() {
		return nil, NewValidationError("start date required")
	}
	if in.EndDate.IsZero() {
		return nil, NewValidationError("end date required")
	}
	if !in.StartDate.Before(in.EndDate) {
		return nil, NewValidationError("end date must be after start date")
	}

	car, err := s.cars.GetCarByID(ctx, in.CarID)
	if err != nil {
		return nil, NewPersistenceError("failed to load car", err)
	}
	if car == nil {
		return nil, NewNotFoundError("car not found")
	}

	days := RentalDays(in.StartDate, in.EndDate)
	total := car.PricePerDay * float64(days)

	b := &models.Booking{
		ID:         uuid.New(),
		UserID:     requesterID,
		CarID:      car.ID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		TotalPrice: total,
		CreatedAt:  s.now(),
	}

	// Single-attempt write; either the booking persists or the caller gets
	// an error and nothing is stored.
	if err := s.bookings.InsertBooking(ctx, b); err != nil {
		return nil, NewPersistenceError("failed to save booking", err)
	}

	return b, nil
}

// ListForUser returns the requester's bookings with their derived status.
// Status is recomputed on every call from the current clock.
func (s *Service) ListForUser(ctx context.Context, requesterID uuid.UUID) ([]UserBooking, error) {
	if requesterID == uuid.Nil {
		return nil, NewValidationError("requester required")
	}

	rows, err := s.bookings.FindBookingsByUser(ctx, requesterID)
	if err != nil {
		return nil, NewPersistenceError("failed to load bookings", err)
	}

	now := s.now()
	out := make([]UserBooking, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserBooking{
			Booking: r.Booking,
			Car:     r.Car,
			Status:  r.Booking.StatusAt(now),
		})
	}
	return out, nil
}

// ListAll returns every booking joined with its car and user. Requires a
// privileged caller.
func (s *Service) ListAll(ctx context.Context, requester Identity) ([]AdminBooking, error) {
	if !requester.IsPrivileged {
		return nil, NewAuthorizationError("admin role required")
	}

	rows, err := s.bookings.FindAllBookings(ctx)
	if err != nil {
		return nil, NewPersistenceError("failed to load bookings", err)
	}

	now := s.now()
	out := make([]AdminBooking, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminBooking{
			Booking: r.Booking,
			Car:     r.Car,
			User:    r.User,
			Status:  r.Booking.StatusAt(now),
		})
	}
	return out, nil
}
