package dto

// CreateBookingRequest represents the payload for creating a booking.
// The caller identity comes from the bearer token, never from the body,
// and the total price is always computed server-side.
type CreateBookingRequest struct {
	CarID     string `json:"car" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// BookingResponse represents a created booking in API responses
type BookingResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	CarID      string  `json:"car_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

// BookingCarSummary represents the car joined onto a booking listing
type BookingCarSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
	PricePerDay float64 `json:"price_per_day"`
}

// BookingUserSummary represents the user joined onto the admin listing
type BookingUserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UserBookingResponse represents one of the caller's bookings, including
// the read-time derived status
type UserBookingResponse struct {
	ID         string            `json:"id"`
	Car        BookingCarSummary `json:"car"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	TotalPrice float64           `json:"total_price"`
	Status     string            `json:"status"`
	CreatedAt  string            `json:"created_at"`
}

// UserBookingListResponse represents the caller's booking history
type UserBookingListResponse struct {
	Bookings []UserBookingResponse `json:"bookings"`
}

// AdminBookingResponse represents a booking in the admin listing with
// joined car and user summaries
type AdminBookingResponse struct {
	ID         string             `json:"id"`
	User       BookingUserSummary `json:"user"`
	Car        BookingCarSummary  `json:"car"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	TotalPrice float64            `json:"total_price"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"created_at"`
}

// AdminBookingListResponse represents the full booking list
type AdminBookingListResponse struct {
	Bookings []AdminBookingResponse `json:"bookings"`
}
