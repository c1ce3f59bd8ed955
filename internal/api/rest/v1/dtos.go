package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the uniform error body. The message sits under the
// "error" key, which is what the web and Unity clients key on.
type ErrorResponse struct {
	Message string `json:"error"`
}

// InfoResponse carries a human-readable confirmation message
type InfoResponse struct {
	Message string `json:"message"`
}

// WaitlistSignupRequest represents the request for joining the waitlist
type WaitlistSignupRequest struct {
	Email  string `json:"email" validate:"required,email,max=254"`
	Name   string `json:"name" validate:"max=120"`
	Source string `json:"source" validate:"max=60"`
}

// Validate method for WaitlistSignupRequest struct
func (r *WaitlistSignupRequest) Validate() error {
	return validateStruct(r)
}

// WaitlistSignupResponse confirms a signup and reports the place in line
type WaitlistSignupResponse struct {
	Email         string    `json:"email"`
	Position      int       `json:"position"`
	AlreadyJoined bool      `json:"already_joined"`
	CreatedAt     time.Time `json:"created_at"`
}

// WaitlistEntryResponse is the admin view of one waitlist entry
type WaitlistEntryResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckoutSessionRequest represents the request for opening a hosted
// checkout session
type CheckoutSessionRequest struct {
	PriceID    string `json:"price_id" validate:"required,max=255"`
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

// Validate method for CheckoutSessionRequest struct
func (r *CheckoutSessionRequest) Validate() error {
	return validateStruct(r)
}

// CheckoutSessionResponse carries the redirect target for a checkout session
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PortalSessionRequest represents the request for opening a billing portal session
type PortalSessionRequest struct {
	ReturnURL string `json:"return_url" validate:"required,url"`
}

// Validate method for PortalSessionRequest struct
func (r *PortalSessionRequest) Validate() error {
	return validateStruct(r)
}

// PortalSessionResponse carries the redirect target for a billing portal session
type PortalSessionResponse struct {
	URL string `json:"url"`
}

// SubscriptionResponse is the owner's view of one subscription mirror
type SubscriptionResponse struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	PriceID            string     `json:"price_id"`
	Quantity           int64      `json:"quantity"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	Created            time.Time  `json:"created"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
	TrialEnd           *time.Time `json:"trial_end,omitempty"`
}

// NewSubscriptionResponse converts a subscription mirror to its response DTO
func NewSubscriptionResponse(subscription *billing.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                 subscription.ID,
		Status:             string(subscription.Status),
		PriceID:            subscription.PriceID,
		Quantity:           subscription.Quantity,
		CancelAtPeriodEnd:  subscription.CancelAtPeriodEnd,
		Created:            subscription.Created,
		CurrentPeriodStart: subscription.CurrentPeriodStart,
		CurrentPeriodEnd:   subscription.CurrentPeriodEnd,
		CanceledAt:         subscription.CanceledAt,
		TrialEnd:           subscription.TrialEnd,
	}
}

// TierOfferingResponse is one row of the pricing page
type TierOfferingResponse struct {
	Tier         string               `json:"tier"`
	ProductName  string               `json:"product_name,omitempty"`
	Description  string               `json:"description,omitempty"`
	PriceID      string               `json:"price_id"`
	Currency     string               `json:"currency"`
	UnitAmount   int64                `json:"unit_amount"`
	Interval     string               `json:"interval"`
	Entitlements billing.Entitlements `json:"entitlements"`
}

// EntitlementsResponse reports the feature limits a member's tier grants
type EntitlementsResponse struct {
	Tier                  string `json:"tier"`
	MaxGalleries          int    `json:"max_galleries"`
	MaxArtworksPerGallery int    `json:"max_artworks_per_gallery"`
	UploadLimitMB         int64  `json:"upload_limit_mb"`
	PrivateGalleries      bool   `json:"private_galleries"`
	CustomEnvironments    bool   `json:"custom_environments"`
	PriorityEvents        bool   `json:"priority_events"`
}

// NewEntitlementsResponse converts domain entitlements to the response DTO
func NewEntitlementsResponse(entitlements *billing.Entitlements) EntitlementsResponse {
	return EntitlementsResponse{
		Tier:                  string(entitlements.Tier),
		MaxGalleries:          entitlements.MaxGalleries,
		MaxArtworksPerGallery: entitlements.MaxArtworksPerGallery,
		UploadLimitMB:         entitlements.UploadLimitMB,
		PrivateGalleries:      entitlements.PrivateGalleries,
		CustomEnvironments:    entitlements.CustomEnvironments,
		PriorityEvents:        entitlements.PriorityEvents,
	}
}

// ProfileUpdateRequest represents the request for updating the caller's
// profile. Omitted fields keep their stored values.
type ProfileUpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,usernameValidation"`
	FullName  *string `json:"full_name" validate:"omitempty,max=120"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Website   *string `json:"website" validate:"omitempty,url"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
}

// Validate method for ProfileUpdateRequest struct
func (r *ProfileUpdateRequest) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("usernameValidation", validators.UsernameValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	return translateValidationError(validate.Struct(r))
}

// ProfileResponse is the public view of a member profile
type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookAckResponse acknowledges a delivered webhook event
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status"`
}

func validateStruct(s interface{}) error {
	validate := validator.New()
	return translateValidationError(validate.Struct(s))
}

func translateValidationError(err error) error {
	if err == nil {
		return nil
	}
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
