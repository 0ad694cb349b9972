package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drivehub-backend/internal/booking"
	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/utils"
)

func parseUUIDField(s, msg string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s", msg)
	}
	return id, nil
}

func errInvalidDate(field string) error {
	return fmt.Errorf("%s must be ISO 8601 format (YYYY-MM-DD or RFC3339)", field)
}

// BookingsHandler exposes the booking workflow over HTTP
type BookingsHandler struct {
	svc    *booking.Service
	email  *utils.EmailService
	logger *zap.Logger
}

// NewBookingsHandler creates a new BookingsHandler. email may be nil when
// SMTP is not configured.
func NewBookingsHandler(svc *booking.Service, email *utils.EmailService, logger *zap.Logger) *BookingsHandler {
	return &BookingsHandler{svc: svc, email: email, logger: logger}
}

// CreateBooking handles POST /api/bookings
// @Summary Book a car for a date range
// @Description Validates the request, computes the total price from the car's daily rate and persists the booking. Price is always computed server-side.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings [post]
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	in, err := h.buildInput(&req)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	b, err := h.svc.CreateBooking(r.Context(), identity.UserID, in)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	// Best-effort confirmation email; a failure never fails the booking.
	if h.email != nil {
		go func() {
			if err := h.email.SendBookingConfirmation(identity.Email, b.StartDate, b.EndDate, b.TotalPrice); err != nil {
				h.logger.Warn("booking confirmation email", zap.Error(err))
			}
		}()
	}

	resp := dto.BookingResponse{
		ID:         b.ID.String(),
		UserID:     b.UserID.String(),
		CarID:      b.CarID.String(),
		StartDate:  utils.FormatTimestamp(b.StartDate),
		EndDate:    utils.FormatTimestamp(b.EndDate),
		TotalPrice: b.TotalPrice,
		CreatedAt:  utils.FormatTimestamp(b.CreatedAt),
	}
	utils.WriteJSONResponse(w, http.StatusCreated, resp)
}

// MyBookings handles GET /api/bookings/my
// @Summary List the caller's bookings
// @Description Each booking carries a status derived from the current clock: upcoming, active, or completed.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserBookingListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings/my [get]
func (h *BookingsHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	items, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	out := make([]dto.UserBookingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.UserBookingResponse{
			ID: it.Booking.ID.String(),
			Car: dto.BookingCarSummary{
				ID:          it.Car.ID.String(),
				Name:        it.Car.Name,
				Brand:       it.Car.Brand,
				ImageURL:    it.Car.ImageURL,
				PricePerDay: it.Car.PricePerDay,
			},
			StartDate:  utils.FormatTimestamp(it.Booking.StartDate),
			EndDate:    utils.FormatTimestamp(it.Booking.EndDate),
			TotalPrice: it.Booking.TotalPrice,
			Status:     it.Status,
			CreatedAt:  utils.FormatTimestamp(it.Booking.CreatedAt),
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserBookingListResponse{Bookings: out})
}

// AllBookings handles GET /api/bookings (admin only)
// @Summary List all bookings
// @Description Every booking joined with its car and user, for administrative display.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminBookingListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings [get]
func (h *BookingsHandler) AllBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	items, err := h.svc.ListAll(r.Context(), identity)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	out := make([]dto.AdminBookingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.AdminBookingResponse{
			ID: it.Booking.ID.String(),
			User: dto.BookingUserSummary{
				ID:       it.User.ID.String(),
				Email:    it.User.Email,
				FullName: it.User.FullName,
			},
			Car: dto.BookingCarSummary{
				ID:          it.Car.ID.String(),
				Name:        it.Car.Name,
				Brand:       it.Car.Brand,
				ImageURL:    it.Car.ImageURL,
				PricePerDay: it.Car.PricePerDay,
			},
			StartDate:  utils.FormatTimestamp(it.Booking.StartDate),
			EndDate:    utils.FormatTimestamp(it.Booking.EndDate),
			TotalPrice: it.Booking.TotalPrice,
			Status:     it.Status,
			CreatedAt:  utils.FormatTimestamp(it.Booking.CreatedAt),
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AdminBookingListResponse{Bookings: out})
}

// buildInput turns the wire payload into the core's validated input shape.
// Missing fields stay zero so the core's fail-fast validation reports them
// in its defined order.
func (h *BookingsHandler) buildInput(req *dto.CreateBookingRequest) (booking.CreateBookingInput, error) {
	var in booking.CreateBookingInput

	if req.CarID != "" {
		carID, err := parseUUIDField(req.CarID, "car must be a UUID")
		if err != nil {
			return in, err
		}
		in.CarID = carID
	}
	if req.StartDate != "" {
		t, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return in, errInvalidDate("start_date")
		}
		in.StartDate = t
	}
	if req.EndDate != "" {
		t, err := utils.ParseDate(req.EndDate)
		if err != nil {
			return in, errInvalidDate("end_date")
		}
		in.EndDate = t
	}
	return in, nil
}

// writeWorkflowError maps the core's typed errors onto HTTP statuses.
func (h *BookingsHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	kind, ok := booking.KindOf(err)
	if !ok {
		h.logger.Error("booking workflow", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Please try again")
		return
	}

	switch kind {
	case booking.KindValidation:
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", booking.MessageOf(err))
	case booking.KindNotFound:
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", booking.MessageOf(err))
	case booking.KindAuthorization:
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", booking.MessageOf(err))
	default:
		// Persistence: log the cause, answer with a generic retry message.
		h.logger.Error("booking workflow", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
	}
}
