package billing

import (
	"context"
)

// CheckoutSession is the projection of a created hosted-checkout session.
// The URL is handed to the client for redirect.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutService creates hosted payment sessions for a user.
type CheckoutService interface {
	// CreateSession ensures the user has a processor customer record and
	// opens a subscription-mode checkout session for the given price.
	// It returns the session projection and any error encountered.
	CreateSession(ctx context.Context, userID, email, priceID, successURL, cancelURL string) (*CheckoutSession, error)

	// CreatePortalSession opens a self-service billing portal session for
	// the user's customer record and returns its URL.
	CreatePortalSession(ctx context.Context, userID, returnURL string) (string, error)
}

// SubscriptionService manages the local subscription mirrors.
type SubscriptionService interface {
	// Upsert writes a subscription mirror. The operation is idempotent on
	// the subscription ID: redelivery or replay never creates a second row.
	Upsert(ctx context.Context, subscription *Subscription) error

	// GetForUser retrieves one subscription, scoped to its owner.
	// Requests for another user's subscription fail as not found.
	GetForUser(ctx context.Context, userID, subscriptionID string) (*Subscription, error)

	// List retrieves subscription mirrors considering a query filter when set.
	List(ctx context.Context, query *SubscriptionQuery) ([]*Subscription, error)

	// ActiveForUser returns the user's currently active (or trialing)
	// subscription, or nil when the user has none.
	ActiveForUser(ctx context.Context, userID string) (*Subscription, error)

	// SyncFromGateway re-fetches the user's subscriptions from the payment
	// processor and upserts the mirrors. It returns the number synced.
	SyncFromGateway(ctx context.Context, userID string) (int, error)
}

// CatalogService manages product and price mirrors and the pricing page view.
type CatalogService interface {
	// ListTiers returns the purchasable tier offerings, ordered by amount.
	ListTiers(ctx context.Context) ([]*TierOffering, error)

	// EnsurePrice returns the price mirror for the given price ID, fetching
	// it through the gateway and persisting it when not yet mirrored.
	EnsurePrice(ctx context.Context, priceID string) (*Price, error)

	// SyncCatalog pulls all active products and prices from the payment
	// processor into the mirrors. It returns the counts synced.
	SyncCatalog(ctx context.Context) (products int, prices int, err error)
}

// EntitlementService resolves a user's plan level and feature limits.
type EntitlementService interface {
	// ResolveTier determines the user's tier from their active
	// subscription's price. Users without an active subscription are free.
	ResolveTier(ctx context.Context, userID string) (Tier, error)

	// EntitlementsForUser returns the feature limits the user's tier grants.
	EntitlementsForUser(ctx context.Context, userID string) (*Entitlements, error)
}

// CustomerRepository defines the interface for customer-mapping operations
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *Customer) error
	GetByUserID(ctx context.Context, userID string) (*Customer, error)
	GetByStripeID(ctx context.Context, stripeCustomerID string) (*Customer, error)
}

// SubscriptionRepository defines the interface for subscription-mirror operations
type SubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, subscriptionID string) (*Subscription, error)
	List(ctx context.Context, query *SubscriptionQuery) ([]*Subscription, error)
}

// CatalogRepository defines the interface for product and price mirrors
type CatalogRepository interface {
	UpsertProduct(ctx context.Context, product *Product) error
	UpsertPrice(ctx context.Context, price *Price) error
	GetPriceByID(ctx context.Context, priceID string) (*Price, error)
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	ListPrices(ctx context.Context, activeOnly bool) ([]*Price, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
}

// PaymentGateway is an interface for interacting with the payment processor.
// The current implementation uses Stripe; the webhook edge verifies event
// signatures while this interface covers the outbound API surface.
type PaymentGateway interface {
	// CreateCustomer creates a processor customer tagged with the user ID.
	// Callers check the local mapping first so each user gets one customer.
	CreateCustomer(ctx context.Context, userID, email string) (*Customer, error)

	// CreateCheckoutSession opens a subscription-mode checkout session for
	// the customer and price and returns its projection.
	CreateCheckoutSession(ctx context.Context, customerID, userID, priceID, successURL, cancelURL string) (*CheckoutSession, error)

	// CreatePortalSession opens a billing-portal session for the customer
	// and returns its URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)

	// GetSubscription fetches one subscription from the processor.
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)

	// ListSubscriptions fetches all of a customer's subscriptions.
	ListSubscriptions(ctx context.Context, customerID string) ([]*Subscription, error)

	// GetPrice fetches a price and its product from the processor.
	GetPrice(ctx context.Context, priceID string) (*Price, *Product, error)

	// ListCatalog fetches all active products and prices from the processor.
	ListCatalog(ctx context.Context) ([]*Product, []*Price, error)
}
