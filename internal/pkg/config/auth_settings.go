package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Role constants carried in the `role` claim of issued JWTs.
const (
	RoleAuthenticated = "authenticated"
	RoleServiceRole   = "service_role"
)

// AuthSettings holds verification settings for the HS256 JWTs issued by the
// identity provider. Issuer and audience checks are enforced only when set.
type AuthSettings struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}

	return nil
}
