package models

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// CustomerModel is the GORM database model for the user to Stripe customer mapping (infrastructure concern)
type CustomerModel struct {
	UserID           string    `gorm:"primaryKey;type:uuid"`
	StripeCustomerID string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Email            string    `gorm:"not null;type:varchar(254)"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts GORM model to domain entity
func (m *CustomerModel) ToDomain() *billing.Customer {
	return &billing.Customer{
		UserID:           m.UserID,
		StripeCustomerID: m.StripeCustomerID,
		Email:            m.Email,
		CreatedAt:        m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CustomerModel) FromDomain(c *billing.Customer) {
	m.UserID = c.UserID
	m.StripeCustomerID = c.StripeCustomerID
	m.Email = c.Email
	m.CreatedAt = c.CreatedAt
}
