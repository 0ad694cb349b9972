package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/middleware"
	"drivehub-backend/internal/models"
	"drivehub-backend/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	db     *pgxpool.Pool
	config *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with email, password, and full name
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Validate required fields
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email, password, and full name are required")
		return
	}
	if len(req.Password) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	// Check if user already exists
	var existingUserID uuid.UUID
	err := h.db.QueryRow(context.Background(),
		"SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingUserID)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "Email already registered")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", "Please try again")
		return
	}

	// Create user
	userID := uuid.New()
	now := time.Now()

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, full_name, profile_pic, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, req.Email, string(hashedPassword), req.FullName, req.ProfilePic, "user", now, now)
	if err != nil {
		h.logger.Error("insert user", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", "Please try again")
		return
	}

	// Generate JWT token
	token, err := middleware.GenerateToken(userID, req.Email, "user", &h.config.JWT)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Please try again")
		return
	}

	user := models.User{
		ID:         userID,
		Email:      req.Email,
		FullName:   req.FullName,
		ProfilePic: req.ProfilePic,
		Role:       "user",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	response := dto.AuthResponse{
		User:  userToResponse(&user),
		Token: token,
	}

	utils.WriteJSONResponse(w, http.StatusCreated, response)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Validate required fields
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	// Get user from database
	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, email, password_hash, full_name, profile_pic, role, created_at, updated_at
           FROM users WHERE email = $1`, req.Email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.ProfilePic, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	// Generate JWT token
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, &h.config.JWT)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Please try again")
		return
	}

	response := dto.AuthResponse{
		User:  userToResponse(&user),
		Token: token,
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Identity set by AuthMiddleware
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, email, full_name, profile_pic, role, created_at, updated_at
           FROM users WHERE id = $1`, userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.ProfilePic, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No profile for this account")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userToResponse(&user))
}

func userToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		ProfilePic: u.ProfilePic,
		Role:       u.Role,
		CreatedAt:  utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt:  utils.FormatTimestamp(u.UpdatedAt),
	}
}
