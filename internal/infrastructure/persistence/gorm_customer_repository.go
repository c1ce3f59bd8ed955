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

type gormCustomerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCustomerRepository creates a new GORM-based billing.CustomerRepository implementation
func NewGormCustomerRepository(db *gorm.DB, logger logger.Logger) (billing.CustomerRepository, error) {
	return &gormCustomerRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCustomerRepository) Upsert(ctx context.Context, customer *billing.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CustomerModel{}
	model.FromDomain(customer)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stripe_customer_id", "email"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert customer mapping: %w", err)
	}

	r.logger.Info("Stored customer mapping for user ", customer.UserID)
	return nil
}

func (r *gormCustomerRepository) GetByUserID(ctx context.Context, userID string) (*billing.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, billing.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer mapping: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCustomerRepository) GetByStripeID(ctx context.Context, stripeCustomerID string) (*billing.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", stripeCustomerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("stripe customer %s: %w", stripeCustomerID, billing.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer mapping: %w", err)
	}
	return model.ToDomain(), nil
}
