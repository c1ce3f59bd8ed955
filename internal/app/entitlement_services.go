package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

// entitlementService implements the billing.EntitlementService interface
// for plan levels and feature limits
type entitlementService struct {
	subscriptionService billing.SubscriptionService
	catalogService      billing.CatalogService
	logger              logger.Logger
}

// NewEntitlementService creates a new entitlementService instance
func NewEntitlementService(
	subscriptionService billing.SubscriptionService,
	catalogService billing.CatalogService,
	logger logger.Logger,
) (billing.EntitlementService, error) {
	return &entitlementService{
		subscriptionService: subscriptionService,
		catalogService:      catalogService,
		logger:              logger,
	}, nil
}

// ResolveTier determines the user's tier from their active subscription's
// price. Users without an active subscription are free.
func (s *entitlementService) ResolveTier(ctx context.Context, userID string) (billing.Tier, error) {
	active, err := s.subscriptionService.ActiveForUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	if active == nil {
		return billing.TierFree, nil
	}

	price, err := s.catalogService.EnsurePrice(ctx, active.PriceID)
	if err != nil {
		if errors.Is(err, billing.ErrPriceNotFound) {
			s.logger.Warn("Active subscription ", active.ID, " references unknown price ", active.PriceID)
			return billing.TierFree, nil
		}
		return "", fmt.Errorf("%w", err)
	}

	return price.Tier, nil
}

// EntitlementsForUser returns the feature limits the user's tier grants.
func (s *entitlementService) EntitlementsForUser(ctx context.Context, userID string) (*billing.Entitlements, error) {
	tier, err := s.ResolveTier(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	entitlements := billing.EntitlementsForTier(tier)
	return &entitlements, nil
}
