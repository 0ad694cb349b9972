package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/models"
	"drivehub-backend/internal/utils"
)

// carsDB is the subset of pgxpool.Pool the catalog handlers touch
type carsDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// CarsHandler manages car catalog endpoints
type CarsHandler struct {
	db     carsDB
	logger *zap.Logger
}

// NewCarsHandler creates a new CarsHandler
func NewCarsHandler(db *pgxpool.Pool, logger *zap.Logger) *CarsHandler {
	return &CarsHandler{db: db, logger: logger}
}

// Cars dispatches by HTTP method for /api/cars
func (h *CarsHandler) Cars(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// If path has an ID suffix, treat as detail
		if strings.HasPrefix(r.URL.Path, "/api/cars/") && len(r.URL.Path) > len("/api/cars/") {
			h.CarDetail(w, r)
			return
		}
		h.ListCars(w, r)
	case http.MethodPost:
		h.CreateCar(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateCar(w, r)
	case http.MethodDelete:
		h.DeleteCar(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListCars handles GET /api/cars with optional filters
// @Summary List cars
// @Tags cars
// @Produce json
// @Param fuel_type query string false "petrol|diesel|ev"
// @Param available query bool false "only available cars"
// @Param limit query int false "page size, max 100" default(20)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} dto.CarListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cars [get]
func (h *CarsHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fuelType := strings.ToLower(strings.TrimSpace(q.Get("fuel_type")))
	if fuelType != "" && !models.ValidFuelType(fuelType) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "fuel_type must be petrol, diesel, or ev")
		return
	}
	onlyAvailable := strings.EqualFold(strings.TrimSpace(q.Get("available")), "true")
	limit := 20
	offset := 0
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			limit = n
		}
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	var total int
	if err := h.db.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM cars WHERE ($1 = '' OR fuel_type = $1) AND (NOT $2 OR available)`,
		fuelType, onlyAvailable).Scan(&total); err != nil {
		h.logger.Error("count cars", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT id, name, brand, type, price_per_day, image_url, available, fuel_type, seats, created_at, updated_at
           FROM cars
          WHERE ($1 = '' OR fuel_type = $1)
            AND (NOT $2 OR available)
          ORDER BY created_at DESC
          LIMIT $3 OFFSET $4`, fuelType, onlyAvailable, limit, offset)
	if err != nil {
		h.logger.Error("list cars", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}
	defer rows.Close()

	items := make([]dto.CarResponse, 0)
	for rows.Next() {
		var c models.Car
		if err := rows.Scan(&c.ID, &c.Name, &c.Brand, &c.Type, &c.PricePerDay, &c.ImageURL, &c.Available, &c.FuelType, &c.Seats, &c.CreatedAt, &c.UpdatedAt); err != nil {
			h.logger.Error("scan car", zap.Error(err))
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
			return
		}
		items = append(items, carToResponse(&c))
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("list cars", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CarListResponse{
		Cars:       items,
		Pagination: dto.Pagination{Total: total, Limit: limit, Offset: offset},
	})
}

// CarDetail handles GET /api/cars/{car_id}
// @Summary Get car detail
// @Tags cars
// @Produce json
// @Param car_id path string true "Car ID"
// @Success 200 {object} dto.CarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cars/{car_id} [get]
func (h *CarsHandler) CarDetail(w http.ResponseWriter, r *http.Request) {
	carID, ok := h.carIDFromPath(w, r)
	if !ok {
		return
	}

	var c models.Car
	err := h.db.QueryRow(context.Background(),
		`SELECT id, name, brand, type, price_per_day, image_url, available, fuel_type, seats, created_at, updated_at
           FROM cars WHERE id = $1`, carID).Scan(
		&c.ID, &c.Name, &c.Brand, &c.Type, &c.PricePerDay, &c.ImageURL, &c.Available, &c.FuelType, &c.Seats, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Car not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, carToResponse(&c))
}

// CreateCar handles POST /api/cars
// @Summary Add a car to the catalog
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCarRequest true "Car payload"
// @Success 201 {object} dto.CarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cars [post]
func (h *CarsHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateCarRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Basic validation
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.FuelType = strings.ToLower(strings.TrimSpace(req.FuelType))
	if req.Name == "" || req.Brand == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name and brand are required")
		return
	}
	if req.PricePerDay <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "price_per_day must be greater than zero")
		return
	}
	if !models.ValidFuelType(req.FuelType) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "fuel_type must be petrol, diesel, or ev")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	now := time.Now()
	c := models.Car{
		ID:          uuid.New(),
		Name:        req.Name,
		Brand:       req.Brand,
		Type:        req.Type,
		PricePerDay: req.PricePerDay,
		ImageURL:    req.ImageURL,
		Available:   available,
		FuelType:    req.FuelType,
		Seats:       req.Seats,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := h.db.Exec(context.Background(),
		`INSERT INTO cars (id, name, brand, type, price_per_day, image_url, available, fuel_type, seats, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, c.Brand, c.Type, c.PricePerDay, c.ImageURL, c.Available, c.FuelType, c.Seats, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		h.logger.Error("insert car", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, carToResponse(&c))
}

// UpdateCar handles PUT/PATCH /api/cars/{car_id}
// @Summary Update a car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param car_id path string true "Car ID"
// @Param payload body dto.UpdateCarRequest true "Update payload"
// @Success 200 {object} dto.CarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cars/{car_id} [put]
func (h *CarsHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	carID, ok := h.carIDFromPath(w, r)
	if !ok {
		return
	}

	var cur models.Car
	err := h.db.QueryRow(context.Background(),
		`SELECT id, name, brand, type, price_per_day, image_url, available, fuel_type, seats, created_at, updated_at
           FROM cars WHERE id = $1`, carID).Scan(
		&cur.ID, &cur.Name, &cur.Brand, &cur.Type, &cur.PricePerDay, &cur.ImageURL, &cur.Available, &cur.FuelType, &cur.Seats, &cur.CreatedAt, &cur.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Car not found")
		return
	}

	var req dto.UpdateCarRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Name != nil {
		cur.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		cur.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Type != nil {
		cur.Type = *req.Type
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay <= 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "price_per_day must be greater than zero")
			return
		}
		cur.PricePerDay = *req.PricePerDay
	}
	if req.ImageURL != nil {
		cur.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		cur.Available = *req.Available
	}
	if req.FuelType != nil {
		ft := strings.ToLower(strings.TrimSpace(*req.FuelType))
		if !models.ValidFuelType(ft) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "fuel_type must be petrol, diesel, or ev")
			return
		}
		cur.FuelType = ft
	}
	if req.Seats != nil {
		cur.Seats = *req.Seats
	}
	cur.UpdatedAt = time.Now()

	_, err = h.db.Exec(context.Background(),
		`UPDATE cars
            SET name = $2, brand = $3, type = $4, price_per_day = $5, image_url = $6, available = $7, fuel_type = $8, seats = $9, updated_at = $10
          WHERE id = $1`,
		cur.ID, cur.Name, cur.Brand, cur.Type, cur.PricePerDay, cur.ImageURL, cur.Available, cur.FuelType, cur.Seats, cur.UpdatedAt)
	if err != nil {
		h.logger.Error("update car", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, carToResponse(&cur))
}

// DeleteCar handles DELETE /api/cars/{car_id}
// @Summary Remove a car from the catalog
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param car_id path string true "Car ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cars/{car_id} [delete]
func (h *CarsHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	carID, ok := h.carIDFromPath(w, r)
	if !ok {
		return
	}

	if _, err := h.db.Exec(context.Background(), `DELETE FROM cars WHERE id = $1`, carID); err != nil {
		h.logger.Error("delete car", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Please try again")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Car deleted"})
}

func (h *CarsHandler) carIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/cars/")
	carID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid car id", "car_id must be UUID")
		return uuid.Nil, false
	}
	return carID, true
}

func carToResponse(c *models.Car) dto.CarResponse {
	return dto.CarResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Brand:       c.Brand,
		Type:        c.Type,
		PricePerDay: c.PricePerDay,
		ImageURL:    c.ImageURL,
		Available:   c.Available,
		FuelType:    c.FuelType,
		Seats:       c.Seats,
		CreatedAt:   utils.FormatTimestamp(c.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(c.UpdatedAt),
	}
}
