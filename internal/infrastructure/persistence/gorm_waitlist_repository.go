package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormWaitlistRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormWaitlistRepository creates a new GORM-based waitlist.Repository implementation
func NewGormWaitlistRepository(db *gorm.DB, logger logger.Logger) (waitlist.Repository, error) {
	return &gormWaitlistRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create inserts the entry unless the email is already on the list.
// The unique index on email backs the conflict clause, so concurrent
// signups with the same address resolve to a single row.
func (r *gormWaitlistRepository) Create(ctx context.Context, entry *waitlist.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, fmt.Errorf("validation error: %w", err)
	}

	model := &models.WaitlistEntryModel{}
	model.FromDomain(entry)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create waitlist entry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.logger.Info("Created waitlist entry with id ", entry.ID)
	return true, nil
}

func (r *gormWaitlistRepository) GetByEmail(ctx context.Context, email string) (*waitlist.Entry, error) {
	var model models.WaitlistEntryModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", email, waitlist.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch waitlist entry: %w", err)
	}
	return model.ToDomain(), nil
}

// Position counts the entries signed up no later than this one. Ties on
// the timestamp break on the entry ID so the answer is stable.
func (r *gormWaitlistRepository) Position(ctx context.Context, entry *waitlist.Entry) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WaitlistEntryModel{}).
		Where("created_at < ? OR (created_at = ? AND id <= ?)", entry.CreatedAt, entry.CreatedAt, entry.ID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute waitlist position: %w", err)
	}
	return int(count), nil
}

func (r *gormWaitlistRepository) List(ctx context.Context, query *waitlist.EntryQuery) ([]*waitlist.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.WaitlistEntryModel
	dbQuery := r.db.WithContext(ctx).Model(&models.WaitlistEntryModel{})

	if query.Email != "" {
		dbQuery = dbQuery.Where("email = ?", query.Email)
	}
	if query.Source != "" {
		dbQuery = dbQuery.Where("source = ?", query.Source)
	}
	if !query.CreatedAt.IsZero() {
		dbQuery = dbQuery.Where("created_at >= ?", query.CreatedAt)
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
		return nil, fmt.Errorf("failed to fetch waitlist entries: %w", err)
	}

	domainList := make([]*waitlist.Entry, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormWaitlistRepository) DeleteByEmail(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.WaitlistEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", email, waitlist.ErrNotFound)
	}

	r.logger.Info("Deleted waitlist entry for ", email)
	return nil
}

func (r *gormWaitlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WaitlistEntryModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}
