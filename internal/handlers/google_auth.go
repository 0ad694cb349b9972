package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/middleware"
	"drivehub-backend/internal/models"
	"drivehub-backend/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	db           *pgxpool.Pool
	oauth2Config *oauth2.Config
	config       *config.Config
	logger       *zap.Logger
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		db:           db,
		oauth2Config: oauth2Config,
		config:       cfg,
		logger:       logger,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]string "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Generate state parameter for CSRF protection
	state := uuid.New().String()

	// Create the authorization URL
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	response := map[string]string{
		"auth_url": authURL,
		"state":    state,
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	// Exchange authorization code for token
	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", "Code exchange failed")
		return
	}

	// Get user info from Google
	userInfo, err := h.getGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		h.logger.Error("google userinfo", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", "Please try again")
		return
	}
	if userInfo.Email == "" {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid user info", "Google account has no email")
		return
	}

	// Find or create the user. Federated sign-ins always resolve to the
	// email-based scheme with role "user".
	var user models.User
	err = h.db.QueryRow(context.Background(),
		`SELECT id, email, full_name, profile_pic, role, created_at, updated_at
           FROM users WHERE email = $1`, userInfo.Email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.ProfilePic, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		now := time.Now()
		user = models.User{
			ID:         uuid.New(),
			Email:      userInfo.Email,
			FullName:   userInfo.Name,
			ProfilePic: userInfo.Picture,
			Role:       "user",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		_, err = h.db.Exec(context.Background(),
			`INSERT INTO users (id, email, password_hash, full_name, profile_pic, role, created_at, updated_at)
             VALUES ($1, $2, '', $3, $4, $5, $6, $7)`,
			user.ID, user.Email, user.FullName, user.ProfilePic, user.Role, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			h.logger.Error("insert google user", zap.Error(err))
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", "Please try again")
			return
		}
	}

	// Generate JWT token
	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, &h.config.JWT)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Please try again")
		return
	}

	response := dto.AuthResponse{
		User:  userToResponse(&user),
		Token: jwtToken,
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// getGoogleUserInfo fetches the user's profile from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*googleOAuth2.Userinfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, fmt.Errorf("create oauth2 service: %w", err)
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("get userinfo: %w", err)
	}

	return userInfo, nil
}
