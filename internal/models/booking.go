package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses derived at read time from the clock and the stored dates.
// Cancelled is reserved; no cancellation flag exists yet.
const (
	BookingStatusUpcoming  = "upcoming"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a reservation of one car by one user for a date interval
type Booking struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	CarID      uuid.UUID `json:"car_id" db:"car_id"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// StatusAt derives the booking's lifecycle phase from the given clock reading.
// Never persisted: "now" moves independently of the record.
func (b *Booking) StatusAt(now time.Time) string {
	switch {
	case now.Before(b.StartDate):
		return BookingStatusUpcoming
	case now.After(b.EndDate):
		return BookingStatusCompleted
	default:
		return BookingStatusActive
	}
}
