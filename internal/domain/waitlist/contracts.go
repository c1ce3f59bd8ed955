package waitlist

import (
	"context"
)

// Service manages waitlist signups and positions.
type Service interface {
	// Signup records a signup for the given email. The operation is
	// idempotent on email: the first signup creates an entry, repeats
	// return the existing one. created reports whether a new entry was
	// written, and position is the 1-based place in line either way.
	Signup(ctx context.Context, email, name, source string) (entry *Entry, position int, created bool, err error)

	// Position returns the entry and 1-based position for an email.
	Position(ctx context.Context, email string) (*Entry, int, error)

	// List retrieves waitlist entries considering a query filter when set.
	List(ctx context.Context, query *EntryQuery) ([]*Entry, error)

	// Remove deletes the entry for an email. Later entries move up.
	Remove(ctx context.Context, email string) error

	// Count returns the total number of entries.
	Count(ctx context.Context) (int64, error)
}

// Repository defines the interface for waitlist persistence operations
type Repository interface {
	// Create inserts the entry unless one with the same email exists.
	// It reports whether a row was written.
	Create(ctx context.Context, entry *Entry) (bool, error)
	GetByEmail(ctx context.Context, email string) (*Entry, error)
	// Position returns the 1-based position of the entry, determined by
	// how many entries were created before it.
	Position(ctx context.Context, entry *Entry) (int, error)
	List(ctx context.Context, query *EntryQuery) ([]*Entry, error)
	DeleteByEmail(ctx context.Context, email string) error
	Count(ctx context.Context) (int64, error)
}
