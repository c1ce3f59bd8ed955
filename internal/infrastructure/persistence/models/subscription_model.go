package models

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// SubscriptionModel is the GORM database model for subscription mirrors (infrastructure concern).
// The primary key is the Stripe subscription ID, which makes upserts on
// webhook redelivery collide with the original row instead of duplicating it.
type SubscriptionModel struct {
	ID                 string     `gorm:"primaryKey;type:varchar(255)"`
	UserID             string     `gorm:"not null;index;type:uuid"`
	CustomerID         string     `gorm:"not null;index;type:varchar(255)"`
	Status             string     `gorm:"not null;type:varchar(20)"`
	PriceID            string     `gorm:"not null;index;type:varchar(255)"`
	Quantity           int64      `gorm:"not null"`
	CancelAtPeriodEnd  bool       `gorm:"not null"`
	Created            time.Time  `gorm:"not null"`
	CurrentPeriodStart time.Time  `gorm:"not null"`
	CurrentPeriodEnd   time.Time  `gorm:"not null"`
	EndedAt            *time.Time
	CancelAt           *time.Time
	CanceledAt         *time.Time
	TrialStart         *time.Time
	TrialEnd           *time.Time
	Metadata           string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts GORM model to domain entity
func (m *SubscriptionModel) ToDomain() *billing.Subscription {
	return &billing.Subscription{
		ID:                 m.ID,
		UserID:             m.UserID,
		CustomerID:         m.CustomerID,
		Status:             billing.SubscriptionStatus(m.Status),
		PriceID:            m.PriceID,
		Quantity:           m.Quantity,
		CancelAtPeriodEnd:  m.CancelAtPeriodEnd,
		Created:            m.Created,
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		EndedAt:            m.EndedAt,
		CancelAt:           m.CancelAt,
		CanceledAt:         m.CanceledAt,
		TrialStart:         m.TrialStart,
		TrialEnd:           m.TrialEnd,
		Metadata:           unmarshalMetadata(m.Metadata),
	}
}

// FromDomain converts domain entity to GORM model
func (m *SubscriptionModel) FromDomain(s *billing.Subscription) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.CustomerID = s.CustomerID
	m.Status = string(s.Status)
	m.PriceID = s.PriceID
	m.Quantity = s.Quantity
	m.CancelAtPeriodEnd = s.CancelAtPeriodEnd
	m.Created = s.Created
	m.CurrentPeriodStart = s.CurrentPeriodStart
	m.CurrentPeriodEnd = s.CurrentPeriodEnd
	m.EndedAt = s.EndedAt
	m.CancelAt = s.CancelAt
	m.CanceledAt = s.CanceledAt
	m.TrialStart = s.TrialStart
	m.TrialEnd = s.TrialEnd
	m.Metadata = marshalMetadata(s.Metadata)
}
