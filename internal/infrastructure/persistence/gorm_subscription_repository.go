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

// subscriptionUpsertColumns are the mutable columns refreshed when a
// subscription mirror is written again. The creation timestamp and the
// row identity stay untouched on conflict.
var subscriptionUpsertColumns = []string{
	"user_id",
	"customer_id",
	"status",
	"price_id",
	"quantity",
	"cancel_at_period_end",
	"current_period_start",
	"current_period_end",
	"ended_at",
	"cancel_at",
	"canceled_at",
	"trial_start",
	"trial_end",
	"metadata",
}

type gormSubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSubscriptionRepository creates a new GORM-based billing.SubscriptionRepository implementation
func NewGormSubscriptionRepository(db *gorm.DB, logger logger.Logger) (billing.SubscriptionRepository, error) {
	return &gormSubscriptionRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert writes the subscription mirror keyed by the subscription ID.
// Replayed or redelivered events update the existing row in place.
func (r *gormSubscriptionRepository) Upsert(ctx context.Context, subscription *billing.Subscription) error {
	if err := subscription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubscriptionModel{}
	model.FromDomain(subscription)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(subscriptionUpsertColumns),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	r.logger.Info("Stored subscription mirror with id ", subscription.ID)
	return nil
}

func (r *gormSubscriptionRepository) GetByID(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("id = ?", subscriptionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", subscriptionID, billing.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSubscriptionRepository) List(ctx context.Context, query *billing.SubscriptionQuery) ([]*billing.Subscription, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.SubscriptionModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})

	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if !query.CreatedAt.IsZero() {
		dbQuery = dbQuery.Where("created >= ?", query.CreatedAt)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}

	domainList := make([]*billing.Subscription, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
