package dto

// CreateOrderRequest represents the payload for creating a PayPal order
type CreateOrderRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreateOrderResponse carries the provider-side order id back to the client
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// CaptureOrderResponse represents the result of capturing a PayPal order
type CaptureOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
