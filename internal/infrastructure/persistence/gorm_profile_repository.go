package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based profiles.Repository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (profiles.Repository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, profile *profiles.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "full_name", "avatar_url", "website", "bio", "tier", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Info("Stored profile for user ", profile.UserID)
	return nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*profiles.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, profiles.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) GetByUsername(ctx context.Context, username string) (*profiles.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("username %s: %w", username, profiles.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) UpdateTier(ctx context.Context, userID, tier string) error {
	result := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"tier": tier, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile tier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, profiles.ErrNotFound)
	}

	r.logger.Info("Updated tier for user ", userID, " to ", tier)
	return nil
}
