package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"
)

// profileService implements the profiles.Service interface for member profiles
type profileService struct {
	profileRepo profiles.Repository
	logger      logger.Logger
}

// NewProfileService creates a new profileService instance
func NewProfileService(profileRepo profiles.Repository, logger logger.Logger) (profiles.Service, error) {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}, nil
}

// GetOwn returns the caller's profile, creating a default free-tier row
// on first access.
func (s *profileService) GetOwn(ctx context.Context, userID string) (*profiles.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, profiles.ErrNotFound) {
		return nil, fmt.Errorf("%w", err)
	}

	profile = defaultProfile(userID, billing.TierFree)
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Created default profile for user ", userID)
	return profile, nil
}

// Get returns a member's profile by user ID.
func (s *profileService) Get(ctx context.Context, userID string) (*profiles.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return profile, nil
}

// UpdateOwn applies the update to the caller's profile and returns the
// stored result. Username collisions surface as ErrUsernameTaken; the
// unique index backs the check under races.
func (s *profileService) UpdateOwn(ctx context.Context, userID string, update *profiles.Update) (*profiles.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	profile, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if update.Username != nil && *update.Username != profile.Username {
		if err := s.checkUsernameFree(ctx, *update.Username, userID); err != nil {
			return nil, err
		}
		profile.Username = *update.Username
	}
	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return profile, nil
}

// SetTier records a tier change, creating the profile row when the member
// has never touched their profile.
func (s *profileService) SetTier(ctx context.Context, userID string, tier string) error {
	err := s.profileRepo.UpdateTier(ctx, userID, tier)
	if err == nil {
		return nil
	}
	if !errors.Is(err, profiles.ErrNotFound) {
		return fmt.Errorf("%w", err)
	}

	profile := defaultProfile(userID, billing.Tier(tier))
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.logger.Info("Created profile for user ", userID, " at tier ", tier)
	return nil
}

func (s *profileService) checkUsernameFree(ctx context.Context, username, userID string) error {
	existing, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("%s: %w", username, profiles.ErrUsernameTaken)
	}
	return nil
}

func defaultProfile(userID string, tier billing.Tier) *profiles.Profile {
	now := time.Now().UTC()
	return &profiles.Profile{
		UserID:    userID,
		Tier:      tier,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
