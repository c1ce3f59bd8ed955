package profiles

import (
	"context"
)

// Service manages member profiles. Reads and writes are scoped by the
// caller's identity: members manage their own row, the service role may
// touch any row.
type Service interface {
	// GetOwn returns the caller's profile, creating a default free-tier
	// row on first access.
	GetOwn(ctx context.Context, userID string) (*Profile, error)

	// Get returns another member's profile by user ID. Only public fields
	// are meaningful to callers other than the owner.
	Get(ctx context.Context, userID string) (*Profile, error)

	// UpdateOwn applies the update to the caller's profile and returns
	// the stored result.
	UpdateOwn(ctx context.Context, userID string, update *Update) (*Profile, error)

	// SetTier records a tier change, normally driven by billing events.
	SetTier(ctx context.Context, userID string, tier string) error
}

// Repository defines the interface for profile persistence operations
type Repository interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	UpdateTier(ctx context.Context, userID, tier string) error
}
