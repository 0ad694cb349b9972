package models

import (
	"time"

	"github.com/google/uuid"
)

// Car represents a rentable vehicle
type Car struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Brand       string    `json:"brand" db:"brand"`
	Type        string    `json:"type" db:"type"`
	PricePerDay float64   `json:"price_per_day" db:"price_per_day"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Available   bool      `json:"available" db:"available"`
	FuelType    string    `json:"fuel_type" db:"fuel_type"`
	Seats       int       `json:"seats" db:"seats"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidFuelType reports whether s is one of the supported fuel types
func ValidFuelType(s string) bool {
	switch s {
	case "petrol", "diesel", "ev":
		return true
	}
	return false
}
