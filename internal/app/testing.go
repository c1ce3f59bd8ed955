//go:build integration
// +build integration

package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence"
	"github.com/Hempp/street-art-gallery/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// Test URLs returned by the fake gateway
const (
	TestCheckoutURL = "https://checkout.stripe.com/c/pay/cs_test_fake"
	TestPortalURL   = "https://billing.stripe.com/p/session/test_fake"
)

// FakePaymentGateway is an in-memory billing.PaymentGateway for
// integration tests, seeded with catalog data per test.
type FakePaymentGateway struct {
	Customers     map[string]*billing.Customer
	Subscriptions map[string]*billing.Subscription
	Prices        map[string]*billing.Price
	Products      map[string]*billing.Product

	counter int
}

// NewFakePaymentGateway creates an empty fake gateway
func NewFakePaymentGateway() *FakePaymentGateway {
	return &FakePaymentGateway{
		Customers:     make(map[string]*billing.Customer),
		Subscriptions: make(map[string]*billing.Subscription),
		Prices:        make(map[string]*billing.Price),
		Products:      make(map[string]*billing.Product),
	}
}

func (g *FakePaymentGateway) CreateCustomer(ctx context.Context, userID, email string) (*billing.Customer, error) {
	g.counter++
	customer := &billing.Customer{
		UserID:           userID,
		StripeCustomerID: fmt.Sprintf("cus_test_%04d", g.counter),
		Email:            email,
		CreatedAt:        time.Now().UTC(),
	}
	g.Customers[customer.StripeCustomerID] = customer
	return customer, nil
}

func (g *FakePaymentGateway) CreateCheckoutSession(ctx context.Context, customerID, userID, priceID, successURL, cancelURL string) (*billing.CheckoutSession, error) {
	if _, ok := g.Customers[customerID]; !ok {
		return nil, fmt.Errorf("fake gateway: unknown customer %s", customerID)
	}
	g.counter++
	return &billing.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%04d", g.counter),
		URL: TestCheckoutURL,
	}, nil
}

func (g *FakePaymentGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if _, ok := g.Customers[customerID]; !ok {
		return "", fmt.Errorf("fake gateway: unknown customer %s", customerID)
	}
	return TestPortalURL, nil
}

func (g *FakePaymentGateway) GetSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	subscription, ok := g.Subscriptions[subscriptionID]
	if !ok {
		return nil, fmt.Errorf("fake gateway: unknown subscription %s", subscriptionID)
	}
	copied := *subscription
	return &copied, nil
}

func (g *FakePaymentGateway) ListSubscriptions(ctx context.Context, customerID string) ([]*billing.Subscription, error) {
	var subscriptions []*billing.Subscription
	for _, subscription := range g.Subscriptions {
		if subscription.CustomerID == customerID {
			copied := *subscription
			subscriptions = append(subscriptions, &copied)
		}
	}
	return subscriptions, nil
}

func (g *FakePaymentGateway) GetPrice(ctx context.Context, priceID string) (*billing.Price, *billing.Product, error) {
	price, ok := g.Prices[priceID]
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", priceID, billing.ErrPriceNotFound)
	}
	product := g.Products[price.ProductID]
	return price, product, nil
}

func (g *FakePaymentGateway) ListCatalog(ctx context.Context) ([]*billing.Product, []*billing.Price, error) {
	var products []*billing.Product
	for _, product := range g.Products {
		products = append(products, product)
	}
	var prices []*billing.Price
	for _, price := range g.Prices {
		prices = append(prices, price)
	}
	return products, prices, nil
}

// SeedTierCatalog loads the premium and creator offerings into the fake
// gateway so checkout and tier resolution have something to resolve.
func (g *FakePaymentGateway) SeedTierCatalog(t *testing.T) {
	t.Helper()

	g.Products[persistence.TestPremiumProductID] = persistence.CreateTestProduct(t, persistence.TestPremiumProductID, "Gallery Premium")
	g.Products[persistence.TestCreatorProductID] = persistence.CreateTestProduct(t, persistence.TestCreatorProductID, "Gallery Creator")
	g.Prices[persistence.TestPremiumPriceID] = persistence.CreateTestPrice(t, persistence.TestPremiumPriceID, persistence.TestPremiumProductID, persistence.TestPremiumAmount, billing.TierPremium)
	g.Prices[persistence.TestCreatorPriceID] = persistence.CreateTestPrice(t, persistence.TestCreatorPriceID, persistence.TestCreatorProductID, persistence.TestCreatorAmount, billing.TierCreator)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	WaitlistService     waitlist.Service
	CheckoutService     billing.CheckoutService
	SubscriptionService billing.SubscriptionService
	CatalogService      billing.CatalogService
	EntitlementService  billing.EntitlementService
	ProfileService      profiles.Service
	WebhookHandler      webhooks.Handler

	Gateway   *FakePaymentGateway
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	fakeGateway := NewFakePaymentGateway()

	waitlistService, err := NewWaitlistService(dbContext.WaitlistRepo, log)
	require.NoError(t, err, "Failed to create waitlist service")

	catalogService, err := NewCatalogService(dbContext.CatalogRepo, fakeGateway, log)
	require.NoError(t, err, "Failed to create catalog service")

	profileService, err := NewProfileService(dbContext.ProfileRepo, log)
	require.NoError(t, err, "Failed to create profile service")

	subscriptionService, err := NewSubscriptionService(
		dbContext.SubscriptionRepo, dbContext.CustomerRepo, catalogService, profileService, fakeGateway, log)
	require.NoError(t, err, "Failed to create subscription service")

	checkoutService, err := NewCheckoutService(dbContext.CustomerRepo, catalogService, fakeGateway, log)
	require.NoError(t, err, "Failed to create checkout service")

	entitlementService, err := NewEntitlementService(subscriptionService, catalogService, log)
	require.NoError(t, err, "Failed to create entitlement service")

	webhookHandler, err := NewWebhookEventService(
		dbContext.WebhookEventRepo, dbContext.CustomerRepo, dbContext.CatalogRepo,
		subscriptionService, catalogService, fakeGateway, log)
	require.NoError(t, err, "Failed to create webhook event service")

	return &TestServices{
		WaitlistService:     waitlistService,
		CheckoutService:     checkoutService,
		SubscriptionService: subscriptionService,
		CatalogService:      catalogService,
		EntitlementService:  entitlementService,
		ProfileService:      profileService,
		WebhookHandler:      webhookHandler,
		Gateway:             fakeGateway,
		DBContext:           dbContext,
	}
}
