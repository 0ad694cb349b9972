// @title DriveHub Backend API
// @version 1.0
// @description REST backend for the DriveHub car-rental application

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "drivehub-backend/docs" // This is required for swagger
	"drivehub-backend/internal/booking"
	"drivehub-backend/internal/config"
	"drivehub-backend/internal/handlers"
	"drivehub-backend/internal/paypal"
	"drivehub-backend/internal/routes"
	"drivehub-backend/internal/storage"
	"drivehub-backend/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// pgxpool with the simple protocol (needed when going through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		logger.Fatal("parse dsn", zap.Error(err))
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "drivehub-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("connect", zap.Error(err))
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("ping", zap.Error(err))
		}
	}

	// Booking workflow core over its pgx stores
	store := storage.NewStore(pool)
	bookingSvc := booking.NewService(store, store)

	var emailSvc *utils.EmailService
	if cfg.IsEmailConfigured() {
		emailSvc = utils.NewEmailService(&cfg.Email)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(pool, cfg, logger)
	googleAuthHandler := handlers.NewGoogleAuthHandler(pool, cfg, logger)
	carsHandler := handlers.NewCarsHandler(pool, logger)
	bookingsHandler := handlers.NewBookingsHandler(bookingSvc, emailSvc, logger)
	paymentsHandler := handlers.NewPaymentsHandler(paypal.NewClient(&cfg.PayPal), logger)
	healthHandler := handlers.NewHealthHandler(pool)

	// Setup all routes
	routes.SetupRoutes(authHandler, googleAuthHandler, carsHandler, bookingsHandler, paymentsHandler, healthHandler, &cfg.JWT)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(http.DefaultServeMux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for SIGINT, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped.")
}
