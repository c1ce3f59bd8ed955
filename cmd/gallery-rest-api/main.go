// cmd/gallery-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/Hempp/street-art-gallery/internal/api/rest/v1"
	"github.com/Hempp/street-art-gallery/internal/app"
	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/gateway"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	services, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, services, log)
}

// appServices holds all initialized application services
type appServices struct {
	waitlist     waitlist.Service
	checkout     billing.CheckoutService
	subscription billing.SubscriptionService
	catalog      billing.CatalogService
	entitlement  billing.EntitlementService
	profile      profiles.Service
	webhook      webhooks.Handler
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appServices, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(
		&models.WaitlistEntryModel{},
		&models.CustomerModel{},
		&models.SubscriptionModel{},
		&models.ProductModel{},
		&models.PriceModel{},
		&models.ProfileModel{},
		&models.WebhookEventModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	waitlistRepo, err := persistence.NewGormWaitlistRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist repository: %w", err)
	}

	customerRepo, err := persistence.NewGormCustomerRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer repository: %w", err)
	}

	subscriptionRepo, err := persistence.NewGormSubscriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription repository: %w", err)
	}

	catalogRepo, err := persistence.NewGormCatalogRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog repository: %w", err)
	}

	profileRepo, err := persistence.NewGormProfileRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}

	eventRepo, err := persistence.NewGormWebhookEventRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook event repository: %w", err)
	}

	// Initialize payment gateway
	paymentGateway, err := gateway.NewStripeGateway(&cfg.Stripe, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway: %w", err)
	}
	log.Info("Payment gateway initialized successfully")

	// Initialize services
	waitlistService, err := app.NewWaitlistService(waitlistRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist service: %w", err)
	}

	catalogService, err := app.NewCatalogService(catalogRepo, paymentGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	profileService, err := app.NewProfileService(profileRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	subscriptionService, err := app.NewSubscriptionService(subscriptionRepo, customerRepo, catalogService, profileService, paymentGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	checkoutService, err := app.NewCheckoutService(customerRepo, catalogService, paymentGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout service: %w", err)
	}

	entitlementService, err := app.NewEntitlementService(subscriptionService, catalogService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlement service: %w", err)
	}

	webhookService, err := app.NewWebhookEventService(eventRepo, customerRepo, catalogRepo, subscriptionService, catalogService, paymentGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook event service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		waitlist:     waitlistService,
		checkout:     checkoutService,
		subscription: subscriptionService,
		catalog:      catalogService,
		entitlement:  entitlementService,
		profile:      profileService,
		webhook:      webhookService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, services *appServices, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	rateLimiter := v1.SetupRoutes(r,
		services.waitlist,
		services.checkout,
		services.subscription,
		services.catalog,
		services.entitlement,
		services.profile,
		services.webhook,
		&cfg.Auth,
		&cfg.Stripe,
		&cfg.RateLimit,
	)
	defer rateLimiter.Stop()

	// Serve OpenAPI spec
	r.GET("/api/v1/gallery/openapi.yaml", func(c *gin.Context) {
		c.File("./api/openapi/v1/gallery.yaml")
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
