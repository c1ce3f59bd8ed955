package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// userIDMetadataKey tags Stripe objects with the owning auth user so
// webhook events can be attributed without a lookup.
const userIDMetadataKey = "user_id"

type stripeGateway struct {
	sc     *client.API
	logger logger.Logger
}

// NewStripeGateway creates a Stripe-backed billing.PaymentGateway implementation
func NewStripeGateway(settings *config.StripeSettings, logger logger.Logger) (billing.PaymentGateway, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Stripe settings: %w", err)
	}

	sc := &client.API{}
	sc.Init(settings.SecretKey, nil)

	return &stripeGateway{
		sc:     sc,
		logger: logger,
	}, nil
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, userID, email string) (*billing.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata(userIDMetadataKey, userID)

	customer, err := g.sc.Customers.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create Stripe customer: %w", err)
	}

	g.logger.Info("Created Stripe customer with id ", customer.ID)
	return CustomerFromStripe(customer, userID), nil
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, customerID, userID, priceID, successURL, cancelURL string) (*billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:          stripe.String(customerID),
		ClientReferenceID: stripe.String(userID),
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:          stripe.String(successURL),
		CancelURL:           stripe.String(cancelURL),
		AllowPromotionCodes: stripe.Bool(true),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{userIDMetadataKey: userID},
		},
	}
	params.Context = ctx

	session, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Info("Created checkout session with id ", session.ID)
	return &billing.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

func (g *stripeGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := g.sc.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create billing portal session: %w", err)
	}

	g.logger.Info("Created billing portal session with id ", session.ID)
	return session.URL, nil
}

func (g *stripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	subscription, err := g.sc.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription %s: %w", subscriptionID, err)
	}

	return SubscriptionFromStripe(subscription, subscription.Metadata[userIDMetadataKey]), nil
}

func (g *stripeGateway) ListSubscriptions(ctx context.Context, customerID string) ([]*billing.Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	var subscriptions []*billing.Subscription
	it := g.sc.Subscriptions.List(params)
	for it.Next() {
		sub := it.Subscription()
		subscriptions = append(subscriptions, SubscriptionFromStripe(sub, sub.Metadata[userIDMetadataKey]))
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for customer %s: %w", customerID, err)
	}

	return subscriptions, nil
}

func (g *stripeGateway) GetPrice(ctx context.Context, priceID string) (*billing.Price, *billing.Product, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx
	params.AddExpand("product")

	price, err := g.sc.Prices.Get(priceID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			// Archived and deleted prices resolve as unknown so callers can
			// fall back to the free tier instead of failing.
			return nil, nil, fmt.Errorf("%s: %w", priceID, billing.ErrPriceNotFound)
		}
		return nil, nil, fmt.Errorf("failed to fetch price %s: %w", priceID, err)
	}

	var product *billing.Product
	if price.Product != nil {
		product = ProductFromStripe(price.Product)
	}

	return PriceFromStripe(price), product, nil
}

func (g *stripeGateway) ListCatalog(ctx context.Context) ([]*billing.Product, []*billing.Price, error) {
	productParams := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	productParams.Context = ctx

	var products []*billing.Product
	productIt := g.sc.Products.List(productParams)
	for productIt.Next() {
		products = append(products, ProductFromStripe(productIt.Product()))
	}
	if err := productIt.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}

	priceParams := &stripe.PriceListParams{
		Active: stripe.Bool(true),
	}
	priceParams.Context = ctx
	priceParams.AddExpand("data.product")

	var prices []*billing.Price
	priceIt := g.sc.Prices.List(priceParams)
	for priceIt.Next() {
		prices = append(prices, PriceFromStripe(priceIt.Price()))
	}
	if err := priceIt.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to list prices: %w", err)
	}

	g.logger.Info("Fetched catalog with ", len(products), " products and ", len(prices), " prices")
	return products, prices, nil
}
