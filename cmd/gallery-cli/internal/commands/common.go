package commands

import (
	"fmt"
	"os"
	"sync"

	"github.com/Hempp/street-art-gallery/internal/app"
	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/gateway"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// cliDependencies holds the service handles the CLI commands operate on.
type cliDependencies struct {
	logger              logger.Logger
	waitlistService     waitlist.Service
	catalogService      billing.CatalogService
	subscriptionService billing.SubscriptionService
	entitlementService  billing.EntitlementService
}

var (
	depsInstance *cliDependencies
	depsErr      error
	depsOnce     sync.Once
)

// setupDependencies wires the backend services for CLI commands. All command
// groups share one set of dependencies so the database is opened once per
// invocation. The configuration file is named by CONFIG_PATH and defaults to
// configs/rest-app.yaml.
func setupDependencies() (*cliDependencies, error) {
	depsOnce.Do(func() {
		depsInstance, depsErr = newDependencies()
	})
	if depsErr != nil {
		return nil, depsErr
	}
	return depsInstance, nil
}

func newDependencies() (*cliDependencies, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

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

	waitlistRepo, err := persistence.NewGormWaitlistRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist repository: %w", err)
	}

	customerRepo, err := persistence.NewGormCustomerRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer repository: %w", err)
	}

	subscriptionRepo, err := persistence.NewGormSubscriptionRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription repository: %w", err)
	}

	catalogRepo, err := persistence.NewGormCatalogRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog repository: %w", err)
	}

	profileRepo, err := persistence.NewGormProfileRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}

	paymentGateway, err := gateway.NewStripeGateway(&cfg.Stripe, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway: %w", err)
	}

	waitlistService, err := app.NewWaitlistService(waitlistRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist service: %w", err)
	}

	catalogService, err := app.NewCatalogService(catalogRepo, paymentGateway, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	profileService, err := app.NewProfileService(profileRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	subscriptionService, err := app.NewSubscriptionService(subscriptionRepo, customerRepo, catalogService, profileService, paymentGateway, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	entitlementService, err := app.NewEntitlementService(subscriptionService, catalogService, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlement service: %w", err)
	}

	return &cliDependencies{
		logger:              loggerInstance,
		waitlistService:     waitlistService,
		catalogService:      catalogService,
		subscriptionService: subscriptionService,
		entitlementService:  entitlementService,
	}, nil
}
