package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

// subscriptionService implements the billing.SubscriptionService interface
// for the local subscription mirrors
type subscriptionService struct {
	subscriptionRepo billing.SubscriptionRepository
	customerRepo     billing.CustomerRepository
	catalogService   billing.CatalogService
	profileService   profiles.Service
	gateway          billing.PaymentGateway
	logger           logger.Logger
}

// NewSubscriptionService creates a new subscriptionService instance
func NewSubscriptionService(
	subscriptionRepo billing.SubscriptionRepository,
	customerRepo billing.CustomerRepository,
	catalogService billing.CatalogService,
	profileService profiles.Service,
	gateway billing.PaymentGateway,
	logger logger.Logger,
) (billing.SubscriptionService, error) {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		catalogService:   catalogService,
		profileService:   profileService,
		gateway:          gateway,
		logger:           logger,
	}, nil
}

// Upsert writes the subscription mirror and refreshes the member's tier
// from whatever is active afterwards. Upserting the same subscription
// twice leaves a single row.
func (s *subscriptionService) Upsert(ctx context.Context, subscription *billing.Subscription) error {
	if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := s.refreshTier(ctx, subscription.UserID); err != nil {
		// The mirror is written; the tier catches up on the next event.
		s.logger.Warn("Failed to refresh tier for user ", subscription.UserID, ": ", err)
	}

	return nil
}

// GetForUser retrieves one subscription, scoped to its owner. A request
// for another user's subscription reads exactly like a missing row.
func (s *subscriptionService) GetForUser(ctx context.Context, userID, subscriptionID string) (*billing.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if subscription.UserID != userID {
		return nil, fmt.Errorf("%s: %w", subscriptionID, billing.ErrSubscriptionNotFound)
	}

	return subscription, nil
}

// List retrieves subscription mirrors considering a query filter when set.
func (s *subscriptionService) List(ctx context.Context, query *billing.SubscriptionQuery) ([]*billing.Subscription, error) {
	if query == nil {
		query = billing.NewSubscriptionQuery()
	}

	subscriptions, err := s.subscriptionRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return subscriptions, nil
}

// ActiveForUser returns the user's newest active or trialing subscription,
// or nil when there is none.
func (s *subscriptionService) ActiveForUser(ctx context.Context, userID string) (*billing.Subscription, error) {
	query := billing.NewSubscriptionQuery()
	query.UserID = userID

	subscriptions, err := s.subscriptionRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	for _, subscription := range subscriptions {
		if subscription.IsActive() {
			return subscription, nil
		}
	}

	return nil, nil
}

// SyncFromGateway re-fetches the user's subscriptions from the payment
// processor and upserts the mirrors. It returns the number synced.
func (s *subscriptionService) SyncFromGateway(ctx context.Context, userID string) (int, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	subscriptions, err := s.gateway.ListSubscriptions(ctx, customer.StripeCustomerID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	synced := 0
	for _, subscription := range subscriptions {
		if subscription.UserID == "" {
			subscription.UserID = userID
		}
		if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
			return synced, fmt.Errorf("%w", err)
		}
		synced++
	}

	if err := s.refreshTier(ctx, userID); err != nil {
		s.logger.Warn("Failed to refresh tier for user ", userID, ": ", err)
	}

	s.logger.Info("Synced ", synced, " subscriptions for user ", userID)
	return synced, nil
}

// refreshTier recomputes the member's tier from the active subscription
// and writes it through to the profile.
func (s *subscriptionService) refreshTier(ctx context.Context, userID string) error {
	active, err := s.ActiveForUser(ctx, userID)
	if err != nil {
		return err
	}

	tier := billing.TierFree
	if active != nil {
		price, err := s.catalogService.EnsurePrice(ctx, active.PriceID)
		if err != nil {
			if !errors.Is(err, billing.ErrPriceNotFound) {
				return err
			}
			// Price vanished from the catalog; the member keeps free
			// until a known price shows up.
		} else {
			tier = price.Tier
		}
	}

	return s.profileService.SetTier(ctx, userID, string(tier))
}
