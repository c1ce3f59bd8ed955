package webhooks

import (
	"errors"
)

// ErrNotFound is returned when no ledger row exists for the given event ID.
var ErrNotFound = errors.New("webhook event not found")
