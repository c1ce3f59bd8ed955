package profiles

import (
	"errors"
)

// ErrNotFound is returned when no profile exists for the given user or
// username, or when the profile is not visible to the requester.
var ErrNotFound = errors.New("profile not found")

// ErrUsernameTaken is returned when an update asks for a username another
// member already holds.
var ErrUsernameTaken = errors.New("username already taken")
