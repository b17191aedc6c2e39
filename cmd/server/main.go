package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	httpapi "greencommute-backend/internal/api/http"
	"greencommute-backend/internal/config"
	"greencommute-backend/internal/logger"
	"greencommute-backend/internal/repository/postgres"
	"greencommute-backend/internal/security"
	"greencommute-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GreenCommute Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, store.OrganizationRepository, tokenManager)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, store.UserRepository, emailSvc)
	membershipSvc := service.NewMembershipService(store.UserRepository, store.OrganizationRepository, emailSvc)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.OrganizationRepository)
	commuteSvc := service.NewCommuteService(store.UserRepository, store.CommuteLogRepository, store.LedgerRepository)
	marketplaceSvc := service.NewMarketplaceService(
		store.ListingRepository,
		store.LedgerRepository,
		store.OrganizationRepository,
		store.UserRepository,
		emailSvc,
	)
	analyticsSvc := service.NewAnalyticsService(
		store.OrganizationRepository,
		store.UserRepository,
		store.CommuteLogRepository,
		store.ListingRepository,
	)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	orgHandler := httpapi.NewOrganizationHandler(orgSvc, membershipSvc, ledgerSvc, analyticsSvc)
	commuteHandler := httpapi.NewCommuteHandler(commuteSvc)
	marketplaceHandler := httpapi.NewMarketplaceHandler(marketplaceSvc)
	analyticsHandler := httpapi.NewAnalyticsHandler(analyticsSvc)

	router := httpapi.NewRouter(
		tokenManager,
		authHandler,
		orgHandler,
		commuteHandler,
		marketplaceHandler,
		analyticsHandler,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
