package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{2,29}$`)

// UsernameValidation validates gallery handles: 3 to 30 characters,
// lowercase letters, digits and underscores, starting with a letter.
func UsernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}
