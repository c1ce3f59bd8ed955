package models

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
)

// WebhookEventModel is the GORM database model for the webhook event ledger (infrastructure concern).
// The primary key is the Stripe event ID, so a redelivered event cannot
// insert a second row.
type WebhookEventModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(255)"`
	Type       string    `gorm:"not null;index;type:varchar(120)"`
	Status     string    `gorm:"not null;type:varchar(20)"`
	Error      string    `gorm:"type:varchar(2000)"`
	ReceivedAt time.Time `gorm:"not null;index"`
	HandledAt  *time.Time
}

// TableName specifies the table name for GORM
func (WebhookEventModel) TableName() string {
	return "webhook_events"
}

// ToDomain converts GORM model to domain entity
func (m *WebhookEventModel) ToDomain() *webhooks.Event {
	return &webhooks.Event{
		ID:         m.ID,
		Type:       m.Type,
		Status:     webhooks.EventStatus(m.Status),
		Error:      m.Error,
		ReceivedAt: m.ReceivedAt,
		HandledAt:  m.HandledAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *WebhookEventModel) FromDomain(e *webhooks.Event) {
	m.ID = e.ID
	m.Type = e.Type
	m.Status = string(e.Status)
	m.Error = e.Error
	m.ReceivedAt = e.ReceivedAt
	m.HandledAt = e.HandledAt
}
