package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCatalogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCatalogRepository creates a new GORM-based billing.CatalogRepository implementation
func NewGormCatalogRepository(db *gorm.DB, logger logger.Logger) (billing.CatalogRepository, error) {
	return &gormCatalogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCatalogRepository) UpsertProduct(ctx context.Context, product *billing.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProductModel{}
	model.FromDomain(product)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"active", "name", "description", "image", "metadata"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	r.logger.Info("Stored product mirror with id ", product.ID)
	return nil
}

func (r *gormCatalogRepository) UpsertPrice(ctx context.Context, price *billing.Price) error {
	if err := price.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PriceModel{}
	model.FromDomain(price)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id", "active", "currency", "unit_amount", "type",
			"interval", "interval_count", "trial_period_days", "tier", "metadata",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}

	r.logger.Info("Stored price mirror with id ", price.ID)
	return nil
}

func (r *gormCatalogRepository) GetPriceByID(ctx context.Context, priceID string) (*billing.Price, error) {
	var model models.PriceModel
	if err := r.db.WithContext(ctx).Where("id = ?", priceID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", priceID, billing.ErrPriceNotFound)
		}
		return nil, fmt.Errorf("failed to fetch price: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCatalogRepository) GetProductByID(ctx context.Context, productID string) (*billing.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", productID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", productID, billing.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCatalogRepository) ListPrices(ctx context.Context, activeOnly bool) ([]*billing.Price, error) {
	var modelList []*models.PriceModel
	dbQuery := r.db.WithContext(ctx).Model(&models.PriceModel{})
	if activeOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}

	if err := dbQuery.Order("unit_amount asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	domainList := make([]*billing.Price, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormCatalogRepository) ListProducts(ctx context.Context, activeOnly bool) ([]*billing.Product, error) {
	var modelList []*models.ProductModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if activeOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}

	if err := dbQuery.Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	domainList := make([]*billing.Product, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
