package waitlist

import (
	"errors"
)

// ErrNotFound is returned when no entry exists for the given email.
var ErrNotFound = errors.New("waitlist entry not found")
