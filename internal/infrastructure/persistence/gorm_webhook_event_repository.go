package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormWebhookEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormWebhookEventRepository creates a new GORM-based webhooks.EventRepository implementation
func NewGormWebhookEventRepository(db *gorm.DB, logger logger.Logger) (webhooks.EventRepository, error) {
	return &gormWebhookEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create inserts the ledger row for an event. Redelivered events hit the
// primary key and report false, which is the dedup signal for handlers.
func (r *gormWebhookEventRepository) Create(ctx context.Context, event *webhooks.Event) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, fmt.Errorf("validation error: %w", err)
	}

	model := &models.WebhookEventModel{}
	model.FromDomain(event)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.logger.Info("Recorded webhook event with id ", event.ID)
	return true, nil
}

func (r *gormWebhookEventRepository) GetByID(ctx context.Context, eventID string) (*webhooks.Event, error) {
	var model models.WebhookEventModel
	if err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", eventID, webhooks.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch webhook event: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormWebhookEventRepository) UpdateStatus(ctx context.Context, eventID string, status webhooks.EventStatus, handlerErr string) error {
	result := r.db.WithContext(ctx).Model(&models.WebhookEventModel{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"error":      handlerErr,
			"handled_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update webhook event status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", eventID, webhooks.ErrNotFound)
	}

	return nil
}

func (r *gormWebhookEventRepository) List(ctx context.Context, limit int) ([]*webhooks.Event, error) {
	var modelList []*models.WebhookEventModel
	dbQuery := r.db.WithContext(ctx).Model(&models.WebhookEventModel{}).Order("received_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch webhook events: %w", err)
	}

	domainList := make([]*webhooks.Event, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
