//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
	"github.com/Hempp/street-art-gallery/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestPremiumPriceID = "price_premium_monthly"
	TestCreatorPriceID = "price_creator_monthly"

	TestPremiumProductID = "prod_premium"
	TestCreatorProductID = "prod_creator"

	TestPremiumAmount = 999
	TestCreatorAmount = 2999
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	WaitlistRepo     waitlist.Repository
	CustomerRepo     billing.CustomerRepository
	SubscriptionRepo billing.SubscriptionRepository
	CatalogRepo      billing.CatalogRepository
	ProfileRepo      profiles.Repository
	WebhookEventRepo webhooks.EventRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	err = db.AutoMigrate(
		&models.WaitlistEntryModel{},
		&models.CustomerModel{},
		&models.SubscriptionModel{},
		&models.PriceModel{},
		&models.ProductModel{},
		&models.ProfileModel{},
		&models.WebhookEventModel{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	waitlistRepo, err := NewGormWaitlistRepository(db, log)
	require.NoError(t, err, "Failed to create waitlist repository")

	customerRepo, err := NewGormCustomerRepository(db, log)
	require.NoError(t, err, "Failed to create customer repository")

	subscriptionRepo, err := NewGormSubscriptionRepository(db, log)
	require.NoError(t, err, "Failed to create subscription repository")

	catalogRepo, err := NewGormCatalogRepository(db, log)
	require.NoError(t, err, "Failed to create catalog repository")

	profileRepo, err := NewGormProfileRepository(db, log)
	require.NoError(t, err, "Failed to create profile repository")

	webhookEventRepo, err := NewGormWebhookEventRepository(db, log)
	require.NoError(t, err, "Failed to create webhook event repository")

	return &TestContext{
		DB:               db,
		WaitlistRepo:     waitlistRepo,
		CustomerRepo:     customerRepo,
		SubscriptionRepo: subscriptionRepo,
		CatalogRepo:      catalogRepo,
		ProfileRepo:      profileRepo,
		WebhookEventRepo: webhookEventRepo,
	}
}

// CreateTestWaitlistEntry creates a waitlist entry with default values
func CreateTestWaitlistEntry(t *testing.T, email string) *waitlist.Entry {
	t.Helper()

	return &waitlist.Entry{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      "Test Member",
		Source:    "landing",
		CreatedAt: time.Now().UTC(),
	}
}

// CreateTestCustomer creates a customer mapping with default values
func CreateTestCustomer(t *testing.T, userID string) *billing.Customer {
	t.Helper()

	return &billing.Customer{
		UserID:           userID,
		StripeCustomerID: "cus_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Email:            "member@example.com",
		CreatedAt:        time.Now().UTC(),
	}
}

// CreateTestSubscription creates an active subscription mirror with default values
func CreateTestSubscription(t *testing.T, userID, customerID string) *billing.Subscription {
	t.Helper()

	now := time.Now().UTC()
	return &billing.Subscription{
		ID:                 "sub_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		UserID:             userID,
		CustomerID:         customerID,
		Status:             billing.SubscriptionStatusActive,
		PriceID:            TestPremiumPriceID,
		Quantity:           1,
		Created:            now,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}
}

// CreateTestPrice creates a recurring price mirror with default values
func CreateTestPrice(t *testing.T, priceID, productID string, amount int64, tier billing.Tier) *billing.Price {
	t.Helper()

	return &billing.Price{
		ID:            priceID,
		ProductID:     productID,
		Active:        true,
		Currency:      "usd",
		UnitAmount:    amount,
		Type:          billing.PriceTypeRecurring,
		Interval:      billing.PriceIntervalMonth,
		IntervalCount: 1,
		Tier:          tier,
	}
}

// CreateTestProduct creates a product mirror with default values
func CreateTestProduct(t *testing.T, productID, name string) *billing.Product {
	t.Helper()

	return &billing.Product{
		ID:     productID,
		Active: true,
		Name:   name,
	}
}

// CreateTestProfile creates a free-tier profile with default values
func CreateTestProfile(t *testing.T, userID string) *profiles.Profile {
	t.Helper()

	now := time.Now().UTC()
	return &profiles.Profile{
		UserID:    userID,
		Tier:      billing.TierFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestWebhookEvent creates a received webhook event with default values
func CreateTestWebhookEvent(t *testing.T, eventType string) *webhooks.Event {
	t.Helper()

	return &webhooks.Event{
		ID:         "evt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Type:       eventType,
		Status:     webhooks.EventStatusReceived,
		ReceivedAt: time.Now().UTC(),
	}
}
