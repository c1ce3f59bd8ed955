package billing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PriceType distinguishes one-off prices from recurring plan prices.
type PriceType string

// Price types.
const (
	PriceTypeOneTime   PriceType = "one_time"
	PriceTypeRecurring PriceType = "recurring"
)

// PriceInterval is the recurring billing period unit.
type PriceInterval string

// Billing period units.
const (
	PriceIntervalDay   PriceInterval = "day"
	PriceIntervalWeek  PriceInterval = "week"
	PriceIntervalMonth PriceInterval = "month"
	PriceIntervalYear  PriceInterval = "year"
)

// Product is the local mirror of a payment-processor product.
type Product struct {
	ID          string `validate:"required"`
	Active      bool
	Name        string `validate:"required,max=255"`
	Description string `validate:"omitempty,max=1000"`
	Image       string `validate:"omitempty,url,max=500"`
	Metadata    map[string]string
}

// Validate for validating Product struct
func (p *Product) Validate() error {
	validate := validator.New()

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

// Price is the local mirror of a payment-processor price. The tier column is
// the lookup table resolving a price to a plan level.
type Price struct {
	ID              string    `validate:"required"`
	ProductID       string    `validate:"required"`
	Active          bool
	Currency        string    `validate:"required,len=3"`
	UnitAmount      int64     `validate:"min=0"`
	Type            PriceType `validate:"required,oneof=one_time recurring"`
	Interval        PriceInterval
	IntervalCount   int64 `validate:"omitempty,min=1"`
	TrialPeriodDays int64 `validate:"min=0"`
	Tier            Tier  `validate:"required,oneof=free premium creator"`
	Metadata        map[string]string
}

// Validate for validating Price struct
func (p *Price) Validate() error {
	validate := validator.New()

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

	if p.Type == PriceTypeRecurring && p.Interval == "" {
		return fmt.Errorf("recurring prices require a billing interval")
	}

	return nil
}

// TierOffering pairs a plan level with its catalog rows for the pricing page.
type TierOffering struct {
	Tier    Tier
	Product *Product
	Price   *Price
}
