package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RateLimitSettings bounds request rates on the public endpoints.
// A zero requests-per-minute value disables rate limiting.
type RateLimitSettings struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"min=0"`
	Burst             int `mapstructure:"burst" validate:"min=0"`
}

// RestConfig aggregates all settings for the REST API process.
type RestConfig struct {
	Port           string            `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins []string          `mapstructure:"allowed_origins"`
	Logger         LoggerSettings    `mapstructure:"logger"`
	Database       DatabaseSettings  `mapstructure:"database"`
	Stripe         StripeSettings    `mapstructure:"stripe"`
	Auth           AuthSettings      `mapstructure:"auth"`
	RateLimit      RateLimitSettings `mapstructure:"rate_limit"`
}

// InitializeRestConfig loads the REST API configuration from the given YAML
// file. Environment variables prefixed with GALLERY_ override file values,
// with dots replaced by underscores (e.g. GALLERY_STRIPE_SECRET_KEY).
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks every section of the REST configuration.
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Stripe.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}

	return nil
}
