package waitlist

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Entry represents a waitlist signup. Email is the natural key; signing up
// twice with the same address keeps the original entry and position.
type Entry struct {
	ID        string    `validate:"required,uuid4"`
	Email     string    `validate:"required,email,max=254"`
	Name      string    `validate:"max=120"`
	Source    string    `validate:"max=60"`
	CreatedAt time.Time `validate:"required"`
}

// Validate method for Entry struct
func (e *Entry) Validate() error {
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

// EntryQuery represents the parameters used to query waitlist entries
type EntryQuery struct {
	Email     string    `validate:"omitempty,email"`
	Source    string    `validate:"omitempty,max=60"`
	CreatedAt time.Time

	Limit  int `validate:"omitempty,min=1,max=1000"`
	Offset int `validate:"omitempty,min=0"`

	SortBy    string `validate:"omitempty,oneof=created_at email"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewEntryQuery creates an EntryQuery with default paging and ordering.
// Entries list oldest-first so positions read naturally.
func NewEntryQuery() *EntryQuery {
	return &EntryQuery{
		Limit:     100,
		Offset:    0,
		SortBy:    "created_at",
		SortOrder: "asc",
	}
}

// Validate method for EntryQuery struct
func (q *EntryQuery) Validate() error {
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
