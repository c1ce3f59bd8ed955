package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// SubscriptionStatus mirrors the lifecycle states reported by the payment
// processor.
type SubscriptionStatus string

// Subscription lifecycle states.
const (
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionStatusPaused            SubscriptionStatus = "paused"
)

// Subscription is the local mirror of a payment-processor subscription,
// keyed by the processor's subscription ID.
type Subscription struct {
	ID                 string             `validate:"required"`
	UserID             string             `validate:"required,uuid4"`
	CustomerID         string             `validate:"required"`
	Status             SubscriptionStatus `validate:"required,oneof=trialing active canceled incomplete incomplete_expired past_due unpaid paused"`
	PriceID            string             `validate:"required"`
	Quantity           int64              `validate:"required,min=1"`
	CancelAtPeriodEnd  bool
	Created            time.Time `validate:"required"`
	CurrentPeriodStart time.Time `validate:"required"`
	CurrentPeriodEnd   time.Time `validate:"required"`
	EndedAt            *time.Time
	CancelAt           *time.Time
	CanceledAt         *time.Time
	TrialStart         *time.Time
	TrialEnd           *time.Time
	Metadata           map[string]string
}

// IsActive reports whether the subscription currently grants its tier.
// Trialing subscriptions count as active.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}

// Validate for validating Subscription struct
func (s *Subscription) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
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

// SubscriptionQuery filters subscription listings.
type SubscriptionQuery struct {
	UserID    string    `validate:"omitempty,uuid4"`
	Status    string    `validate:"omitempty,oneof=trialing active canceled incomplete incomplete_expired past_due unpaid paused"`
	CreatedAt time.Time `validate:"omitempty"`

	Limit     int    `validate:"min=0,max=1000"`
	Offset    int    `validate:"min=0"`
	SortBy    string `validate:"omitempty,oneof=created current_period_end status"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewSubscriptionQuery creates a SubscriptionQuery with sane defaults.
func NewSubscriptionQuery() *SubscriptionQuery {
	return &SubscriptionQuery{
		Limit:     100,
		Offset:    0,
		SortBy:    "created",
		SortOrder: "desc",
	}
}

// Validate for validating SubscriptionQuery struct
func (q *SubscriptionQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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
