package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

// catalogService implements the billing.CatalogService interface for the
// product and price mirrors
type catalogService struct {
	catalogRepo billing.CatalogRepository
	gateway     billing.PaymentGateway
	logger      logger.Logger
}

// NewCatalogService creates a new catalogService instance
func NewCatalogService(catalogRepo billing.CatalogRepository, gateway billing.PaymentGateway, logger logger.Logger) (billing.CatalogService, error) {
	return &catalogService{
		catalogRepo: catalogRepo,
		gateway:     gateway,
		logger:      logger,
	}, nil
}

// ListTiers returns the purchasable tier offerings. Prices come back
// ordered by amount, so the free-to-creator ladder reads top to bottom.
func (s *catalogService) ListTiers(ctx context.Context) ([]*billing.TierOffering, error) {
	prices, err := s.catalogRepo.ListPrices(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var offerings []*billing.TierOffering
	for _, price := range prices {
		if price.Type != billing.PriceTypeRecurring {
			continue
		}

		offering := &billing.TierOffering{
			Tier:  price.Tier,
			Price: price,
		}

		product, err := s.catalogRepo.GetProductByID(ctx, price.ProductID)
		if err != nil {
			if !errors.Is(err, billing.ErrProductNotFound) {
				return nil, fmt.Errorf("%w", err)
			}
			// Product mirror lags behind the price mirror; the offering
			// still lists without it.
		} else {
			offering.Product = product
		}

		offerings = append(offerings, offering)
	}

	return offerings, nil
}

// EnsurePrice returns the price mirror, fetching it through the gateway
// and persisting it when not yet mirrored.
func (s *catalogService) EnsurePrice(ctx context.Context, priceID string) (*billing.Price, error) {
	price, err := s.catalogRepo.GetPriceByID(ctx, priceID)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, billing.ErrPriceNotFound) {
		return nil, fmt.Errorf("%w", err)
	}

	price, product, err := s.gateway.GetPrice(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if product != nil {
		if err := s.catalogRepo.UpsertProduct(ctx, product); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
	if err := s.catalogRepo.UpsertPrice(ctx, price); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Mirrored price ", priceID, " on first use")
	return price, nil
}

// SyncCatalog pulls all active products and prices into the mirrors.
func (s *catalogService) SyncCatalog(ctx context.Context) (int, int, error) {
	products, prices, err := s.gateway.ListCatalog(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w", err)
	}

	for _, product := range products {
		if err := s.catalogRepo.UpsertProduct(ctx, product); err != nil {
			return 0, 0, fmt.Errorf("%w", err)
		}
	}
	for _, price := range prices {
		if err := s.catalogRepo.UpsertPrice(ctx, price); err != nil {
			return 0, 0, fmt.Errorf("%w", err)
		}
	}

	s.logger.Info("Synced catalog with ", len(products), " products and ", len(prices), " prices")
	return len(products), len(prices), nil
}
