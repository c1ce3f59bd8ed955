package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Customer maps a gallery user to their payment-processor customer record.
type Customer struct {
	UserID           string    `validate:"required,uuid4"`
	StripeCustomerID string    `validate:"required"`
	Email            string    `validate:"omitempty,email"`
	CreatedAt        time.Time `validate:"required"`
}

// Validate for validating Customer struct
func (c *Customer) Validate() error {
	validate := validator.New()

	err := validate.Struct(c)
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
