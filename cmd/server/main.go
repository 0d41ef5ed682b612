package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "toolshare-backend/internal/api/http"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present so local secrets reach the config overrides
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Toolshare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize External Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	gateway := service.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	toolSvc := service.NewToolService(store.ToolRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRequestRepository,
		store.ToolRepository,
		store.UserRepository,
		gateway,
		emailSvc,
	)
	cartSvc := service.NewCartService(
		store.ToolRepository,
		store.UserRepository,
		store.RentalRequestRepository,
		gateway,
		cfg.Stripe.Currency,
	)
	cartStore := service.NewCartStore()
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	cartStore.StartJanitor(janitorCtx, time.Hour)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:   httpapi.NewAuthHandler(authSvc),
		User:   httpapi.NewUserHandler(userSvc),
		Tool:   httpapi.NewToolHandler(toolSvc),
		Rental: httpapi.NewRentalHandler(rentalSvc),
		Cart:   httpapi.NewCartHandler(cartSvc, cartStore),
	}
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)
	router := httpapi.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
