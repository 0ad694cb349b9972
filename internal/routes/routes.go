package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/handlers"
	"drivehub-backend/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	carsHandler *handlers.CarsHandler,
	bookingsHandler *handlers.BookingsHandler,
	paymentsHandler *handlers.PaymentsHandler,
	healthHandler *handlers.HealthHandler,
	jwtCfg *config.JWTConfig,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", authHandler.Register)
	http.HandleFunc("/api/auth/login", authHandler.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(authHandler.GetProfile, jwtCfg))
	http.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Car catalog: reads are public, writes need a token
	carsRoute := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			carsHandler.Cars(w, r)
			return
		}
		middleware.AuthMiddleware(carsHandler.Cars, jwtCfg)(w, r)
	}
	http.HandleFunc("/api/cars", carsRoute)
	http.HandleFunc("/api/cars/", carsRoute)

	// Bookings: create and own-history for any user, full listing for admins
	http.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			middleware.AuthMiddleware(bookingsHandler.CreateBooking, jwtCfg)(w, r)
		case http.MethodGet:
			middleware.AuthMiddleware(middleware.AdminMiddleware(bookingsHandler.AllBookings), jwtCfg)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	http.HandleFunc("/api/bookings/my", middleware.AuthMiddleware(bookingsHandler.MyBookings, jwtCfg))

	// Payments: checkout only makes sense for a signed-in user
	http.HandleFunc("/api/payments/paypal/create-order", middleware.AuthMiddleware(paymentsHandler.CreateOrder, jwtCfg))
	http.HandleFunc("/api/payments/paypal/capture/", middleware.AuthMiddleware(paymentsHandler.CaptureOrder, jwtCfg))

	// Swagger UI
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("DriveHub backend is running."))
}
