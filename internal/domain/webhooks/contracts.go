package webhooks

import (
	"context"
)

// Handler processes verified webhook events. Implementations must be
// safe under redelivery: the same event ID may arrive more than once.
type Handler interface {
	// HandleEvent records and dispatches one verified event. Events whose
	// ID has been seen before are acknowledged without reprocessing and
	// reported as skipped. The payload is the raw event object JSON.
	HandleEvent(ctx context.Context, eventID, eventType string, payload []byte) (EventStatus, error)
}

// EventRepository defines the interface for the webhook event ledger
type EventRepository interface {
	// Create inserts the ledger row unless the event ID was already
	// recorded. It reports whether a row was written.
	Create(ctx context.Context, event *Event) (bool, error)
	GetByID(ctx context.Context, eventID string) (*Event, error)
	// UpdateStatus finalizes the row after handling, stamping HandledAt.
	UpdateStatus(ctx context.Context, eventID string, status EventStatus, handlerErr string) error
	List(ctx context.Context, limit int) ([]*Event, error)
}
