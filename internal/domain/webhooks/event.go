package webhooks

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// EventStatus reflects the outcome of processing one webhook event.
type EventStatus string

const (
	// EventStatusReceived marks an event recorded but not yet handled.
	EventStatusReceived EventStatus = "received"
	// EventStatusProcessed marks an event handled successfully.
	EventStatusProcessed EventStatus = "processed"
	// EventStatusSkipped marks an event of a type this service ignores.
	EventStatusSkipped EventStatus = "skipped"
	// EventStatusFailed marks an event whose handler returned an error.
	EventStatusFailed EventStatus = "failed"
)

// Event is the ledger record for one delivered webhook event. The event ID
// is the processor's ID, so redeliveries collide with the original row.
type Event struct {
	ID         string      `validate:"required"`
	Type       string      `validate:"required,max=120"`
	Status     EventStatus `validate:"required,oneof=received processed skipped failed"`
	Error      string      `validate:"max=2000"`
	ReceivedAt time.Time   `validate:"required"`
	HandledAt  *time.Time
}

// Validate method for Event struct
func (e *Event) Validate() error {
	validate := validator.New()
	err := validate.Struct(e)
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
