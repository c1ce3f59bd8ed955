package profiles

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Profile represents a gallery member's public profile. UserID matches the
// auth subject; the tier is denormalized from the active subscription so
// profile reads never touch billing.
type Profile struct {
	UserID    string       `validate:"required,uuid4"`
	Username  string       `validate:"omitempty,usernameValidation"`
	FullName  string       `validate:"max=120"`
	AvatarURL string       `validate:"omitempty,url"`
	Website   string       `validate:"omitempty,url"`
	Bio       string       `validate:"max=500"`
	Tier      billing.Tier `validate:"required,oneof=free premium creator"`
	CreatedAt time.Time    `validate:"required"`
	UpdatedAt time.Time    `validate:"required"`
}

// Validate method for Profile struct
func (p *Profile) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("usernameValidation", validators.UsernameValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// Update carries the fields a member may change on their own profile.
// Nil pointers leave the stored value untouched.
type Update struct {
	Username  *string `validate:"omitempty,usernameValidation"`
	FullName  *string `validate:"omitempty,max=120"`
	AvatarURL *string `validate:"omitempty,url"`
	Website   *string `validate:"omitempty,url"`
	Bio       *string `validate:"omitempty,max=500"`
}

// Validate method for Update struct
func (u *Update) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("usernameValidation", validators.UsernameValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(u)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
