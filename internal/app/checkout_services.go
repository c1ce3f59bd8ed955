package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

// checkoutService implements the billing.CheckoutService interface for
// hosted checkout and billing portal sessions
type checkoutService struct {
	customerRepo   billing.CustomerRepository
	catalogService billing.CatalogService
	gateway        billing.PaymentGateway
	logger         logger.Logger
}

// NewCheckoutService creates a new checkoutService instance
func NewCheckoutService(
	customerRepo billing.CustomerRepository,
	catalogService billing.CatalogService,
	gateway billing.PaymentGateway,
	logger logger.Logger,
) (billing.CheckoutService, error) {
	return &checkoutService{
		customerRepo:   customerRepo,
		catalogService: catalogService,
		gateway:        gateway,
		logger:         logger,
	}, nil
}

// CreateSession opens a subscription-mode checkout session for the user.
// The price must be an active recurring price from the catalog.
func (s *checkoutService) CreateSession(ctx context.Context, userID, email, priceID, successURL, cancelURL string) (*billing.CheckoutSession, error) {
	price, err := s.catalogService.EnsurePrice(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !price.Active {
		return nil, fmt.Errorf("price %s is not purchasable", priceID)
	}
	if price.Type != billing.PriceTypeRecurring {
		return nil, fmt.Errorf("price %s is not a subscription price", priceID)
	}

	customer, err := s.ensureCustomer(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, customer.StripeCustomerID, userID, priceID, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Opened checkout session for user ", userID, " and price ", priceID)
	return session, nil
}

// CreatePortalSession opens a billing portal session for the user's
// customer record. Users without one have nothing to manage yet.
func (s *checkoutService) CreatePortalSession(ctx context.Context, userID, returnURL string) (string, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	url, err := s.gateway.CreatePortalSession(ctx, customer.StripeCustomerID, returnURL)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return url, nil
}

// ensureCustomer returns the user's customer mapping, creating the Stripe
// customer and the mapping on first checkout.
func (s *checkoutService) ensureCustomer(ctx context.Context, userID, email string) (*billing.Customer, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, billing.ErrCustomerNotFound) {
		return nil, err
	}

	customer, err = s.gateway.CreateCustomer(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}
