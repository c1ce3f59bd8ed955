//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
)

// MockWaitlistService is a mock implementation of waitlist.Service
type MockWaitlistService struct {
	mock.Mock
}

func (m *MockWaitlistService) Signup(ctx context.Context, email, name, source string) (*waitlist.Entry, int, bool, error) {
	args := m.Called(ctx, email, name, source)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(*waitlist.Entry), args.Int(1), args.Bool(2), args.Error(3)
}

func (m *MockWaitlistService) Position(ctx context.Context, email string) (*waitlist.Entry, int, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*waitlist.Entry), args.Int(1), args.Error(2)
}

func (m *MockWaitlistService) List(ctx context.Context, query *waitlist.EntryQuery) ([]*waitlist.Entry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*waitlist.Entry), args.Error(1)
}

func (m *MockWaitlistService) Remove(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockWaitlistService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCheckoutService is a mock implementation of billing.CheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession(ctx context.Context, userID, email, priceID, successURL, cancelURL string) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, userID, email, priceID, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) CreatePortalSession(ctx context.Context, userID, returnURL string) (string, error) {
	args := m.Called(ctx, userID, returnURL)
	return args.String(0), args.Error(1)
}

// MockSubscriptionService is a mock implementation of billing.SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Upsert(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionService) GetForUser(ctx context.Context, userID, subscriptionID string) (*billing.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) List(ctx context.Context, query *billing.SubscriptionQuery) ([]*billing.Subscription, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) ActiveForUser(ctx context.Context, userID string) (*billing.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) SyncFromGateway(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockCatalogService is a mock implementation of billing.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTiers(ctx context.Context) ([]*billing.TierOffering, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.TierOffering), args.Error(1)
}

func (m *MockCatalogService) EnsurePrice(ctx context.Context, priceID string) (*billing.Price, error) {
	args := m.Called(ctx, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Price), args.Error(1)
}

func (m *MockCatalogService) SyncCatalog(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockEntitlementService is a mock implementation of billing.EntitlementService
type MockEntitlementService struct {
	mock.Mock
}

func (m *MockEntitlementService) ResolveTier(ctx context.Context, userID string) (billing.Tier, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(billing.Tier), args.Error(1)
}

func (m *MockEntitlementService) EntitlementsForUser(ctx context.Context, userID string) (*billing.Entitlements, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Entitlements), args.Error(1)
}

// MockProfileService is a mock implementation of profiles.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetOwn(ctx context.Context, userID string) (*profiles.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*profiles.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateOwn(ctx context.Context, userID string, update *profiles.Update) (*profiles.Profile, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) SetTier(ctx context.Context, userID string, tier string) error {
	args := m.Called(ctx, userID, tier)
	return args.Error(0)
}

// MockWebhookEventHandler is a mock implementation of webhooks.Handler
type MockWebhookEventHandler struct {
	mock.Mock
}

func (m *MockWebhookEventHandler) HandleEvent(ctx context.Context, eventID, eventType string, payload []byte) (webhooks.EventStatus, error) {
	args := m.Called(ctx, eventID, eventType, payload)
	return args.Get(0).(webhooks.EventStatus), args.Error(1)
}
