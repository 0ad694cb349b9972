package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/paypal"
	"drivehub-backend/internal/utils"
)

// PaymentsHandler exposes the PayPal order flow
type PaymentsHandler struct {
	paypal *paypal.Client
	logger *zap.Logger
}

// NewPaymentsHandler creates a new PaymentsHandler
func NewPaymentsHandler(client *paypal.Client, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{paypal: client, logger: logger}
}

// CreateOrder handles POST /api/payments/paypal/create-order
// @Summary Create a PayPal order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateOrderRequest true "Order amount"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/payments/paypal/create-order [post]
func (h *PaymentsHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.CreateOrderRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.Amount <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "amount must be greater than zero")
		return
	}

	order, err := h.paypal.CreateOrder(r.Context(), req.Amount)
	if err != nil {
		h.logger.Error("create paypal order", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Payment error", "Failed to create PayPal order")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CreateOrderResponse{ID: order.ID})
}

// CaptureOrder handles POST /api/payments/paypal/capture/{orderID}
// @Summary Capture a PayPal order
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param orderID path string true "PayPal order ID"
// @Success 200 {object} dto.CaptureOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/payments/paypal/capture/{orderID} [post]
func (h *PaymentsHandler) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orderID := strings.TrimPrefix(r.URL.Path, "/api/payments/paypal/capture/")
	if orderID == "" || strings.Contains(orderID, "/") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "orderID is required")
		return
	}

	order, err := h.paypal.CaptureOrder(r.Context(), orderID)
	if err != nil {
		h.logger.Error("capture paypal order", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Payment error", "Failed to capture PayPal order")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CaptureOrderResponse{ID: order.ID, Status: order.Status})
}
