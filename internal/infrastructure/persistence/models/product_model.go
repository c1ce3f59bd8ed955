package models

import (
	"github.com/Hempp/street-art-gallery/internal/domain/billing"
)

// ProductModel is the GORM database model for product mirrors (infrastructure concern)
type ProductModel struct {
	ID          string `gorm:"primaryKey;type:varchar(255)"`
	Active      bool   `gorm:"not null"`
	Name        string `gorm:"not null;type:varchar(255)"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:varchar(2048)"`
	Metadata    string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts GORM model to domain entity
func (m *ProductModel) ToDomain() *billing.Product {
	return &billing.Product{
		ID:          m.ID,
		Active:      m.Active,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Metadata:    unmarshalMetadata(m.Metadata),
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProductModel) FromDomain(p *billing.Product) {
	m.ID = p.ID
	m.Active = p.Active
	m.Name = p.Name
	m.Description = p.Description
	m.Image = p.Image
	m.Metadata = marshalMetadata(p.Metadata)
}
