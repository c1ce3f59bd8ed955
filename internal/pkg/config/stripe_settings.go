package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StripeSettings holds credentials for the Stripe API and the webhook endpoint.
type StripeSettings struct {
	SecretKey     string `mapstructure:"secret_key" validate:"required"`
	WebhookSecret string `mapstructure:"webhook_secret" validate:"required"`
}

// Validate checks that all fields in StripeSettings are valid
func (s *StripeSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StripeSettings: %w", err)
	}

	if !strings.HasPrefix(s.SecretKey, "sk_") && !strings.HasPrefix(s.SecretKey, "rk_") {
		return fmt.Errorf("stripe secret key must start with sk_ or rk_")
	}
	if !strings.HasPrefix(s.WebhookSecret, "whsec_") {
		return fmt.Errorf("stripe webhook secret must start with whsec_")
	}

	return nil
}
