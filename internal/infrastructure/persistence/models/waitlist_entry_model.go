package models

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
)

// WaitlistEntryModel is the GORM database model for waitlist signups (infrastructure concern).
// Email carries a unique index so repeated signups cannot create duplicates.
type WaitlistEntryModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"not null;uniqueIndex;type:varchar(254)"`
	Name      string    `gorm:"type:varchar(120)"`
	Source    string    `gorm:"type:varchar(60)"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (WaitlistEntryModel) TableName() string {
	return "waitlist"
}

// ToDomain converts GORM model to domain entity
func (m *WaitlistEntryModel) ToDomain() *waitlist.Entry {
	return &waitlist.Entry{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Source:    m.Source,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *WaitlistEntryModel) FromDomain(e *waitlist.Entry) {
	m.ID = e.ID
	m.Email = e.Email
	m.Name = e.Name
	m.Source = e.Source
	m.CreatedAt = e.CreatedAt
}
