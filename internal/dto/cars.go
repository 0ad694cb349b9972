package dto

// CreateCarRequest represents the payload for adding a car to the catalog
type CreateCarRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand" validate:"required"`
	Type        string  `json:"type,omitempty"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	FuelType    string  `json:"fuel_type" validate:"required,oneof=petrol diesel ev"`
	Seats       int     `json:"seats,omitempty"`
}

// UpdateCarRequest represents a partial car update; nil fields are left
// unchanged
type UpdateCarRequest struct {
	Name        *string  `json:"name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Type        *string  `json:"type,omitempty"`
	PricePerDay *float64 `json:"price_per_day,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Available   *bool    `json:"available,omitempty"`
	FuelType    *string  `json:"fuel_type,omitempty"`
	Seats       *int     `json:"seats,omitempty"`
}

// CarResponse represents car data in API responses
type CarResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Type        string  `json:"type"`
	PricePerDay float64 `json:"price_per_day"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `json:"available"`
	FuelType    string  `json:"fuel_type"`
	Seats       int     `json:"seats"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Pagination info
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// CarListResponse represents the car catalog listing
type CarListResponse struct {
	Cars       []CarResponse `json:"cars"`
	Pagination Pagination    `json:"pagination"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
