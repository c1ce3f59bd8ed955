package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/pkg/logger"

	"github.com/google/uuid"
)

// waitlistService implements the waitlist.Service interface for managing signups
type waitlistService struct {
	waitlistRepo waitlist.Repository
	logger       logger.Logger
}

// NewWaitlistService creates a new waitlistService instance
func NewWaitlistService(waitlistRepo waitlist.Repository, logger logger.Logger) (waitlist.Service, error) {
	return &waitlistService{
		waitlistRepo: waitlistRepo,
		logger:       logger,
	}, nil
}

// Signup records a waitlist signup. Signing up twice with the same email
// keeps the original entry, so the reported position never moves backwards.
func (s *waitlistService) Signup(ctx context.Context, email, name, source string) (*waitlist.Entry, int, bool, error) {
	entry := &waitlist.Entry{
		ID:        uuid.New().String(),
		Email:     normalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Source:    strings.TrimSpace(source),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w", err)
	}

	if !created {
		entry, err = s.waitlistRepo.GetByEmail(ctx, entry.Email)
		if err != nil {
			return nil, 0, false, fmt.Errorf("%w", err)
		}
		s.logger.Info("Waitlist signup repeated for ", entry.Email)
	}

	position, err := s.waitlistRepo.Position(ctx, entry)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w", err)
	}

	return entry, position, created, nil
}

// Position returns the entry and 1-based position for an email.
func (s *waitlistService) Position(ctx context.Context, email string) (*waitlist.Entry, int, error) {
	entry, err := s.waitlistRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}

	position, err := s.waitlistRepo.Position(ctx, entry)
	if err != nil {
		return nil, 0, fmt.Errorf("%w", err)
	}

	return entry, position, nil
}

// List retrieves waitlist entries considering a query filter when set.
func (s *waitlistService) List(ctx context.Context, query *waitlist.EntryQuery) ([]*waitlist.Entry, error) {
	if query == nil {
		query = waitlist.NewEntryQuery()
	}

	entries, err := s.waitlistRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return entries, nil
}

// Remove deletes the entry for an email.
func (s *waitlistService) Remove(ctx context.Context, email string) error {
	if err := s.waitlistRepo.DeleteByEmail(ctx, normalizeEmail(email)); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Count returns the total number of entries.
func (s *waitlistService) Count(ctx context.Context) (int64, error) {
	count, err := s.waitlistRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return count, nil
}

// normalizeEmail canonicalizes an address so lookups and the unique index
// agree on case and surrounding whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
