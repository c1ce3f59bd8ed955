package models

import (
	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// PriceModel is the GORM database model for price mirrors (infrastructure concern)
type PriceModel struct {
	ID              string `gorm:"primaryKey;type:varchar(255)"`
	ProductID       string `gorm:"not null;index;type:varchar(255)"`
	Active          bool   `gorm:"not null"`
	Currency        string `gorm:"not null;type:varchar(3)"`
	UnitAmount      int64  `gorm:"not null"`
	Type            string `gorm:"not null;type:varchar(20)"`
	Interval        string `gorm:"type:varchar(10)"`
	IntervalCount   int64
	TrialPeriodDays int64
	Tier            string `gorm:"not null;index;type:varchar(20)"`
	Metadata        string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (PriceModel) TableName() string {
	return "prices"
}

// ToDomain converts GORM model to domain entity
func (m *PriceModel) ToDomain() *billing.Price {
	return &billing.Price{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Active:          m.Active,
		Currency:        m.Currency,
		UnitAmount:      m.UnitAmount,
		Type:            billing.PriceType(m.Type),
		Interval:        billing.PriceInterval(m.Interval),
		IntervalCount:   m.IntervalCount,
		TrialPeriodDays: m.TrialPeriodDays,
		Tier:            billing.Tier(m.Tier),
		Metadata:        unmarshalMetadata(m.Metadata),
	}
}

// FromDomain converts domain entity to GORM model
func (m *PriceModel) FromDomain(p *billing.Price) {
	m.ID = p.ID
	m.ProductID = p.ProductID
	m.Active = p.Active
	m.Currency = p.Currency
	m.UnitAmount = p.UnitAmount
	m.Type = string(p.Type)
	m.Interval = string(p.Interval)
	m.IntervalCount = p.IntervalCount
	m.TrialPeriodDays = p.TrialPeriodDays
	m.Tier = string(p.Tier)
	m.Metadata = marshalMetadata(p.Metadata)
}
