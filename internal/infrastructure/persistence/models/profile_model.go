package models

import (
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/domain/profiles"
)

// ProfileModel is the GORM database model for member profiles (infrastructure concern)
type ProfileModel struct {
	UserID    string    `gorm:"primaryKey;type:uuid"`
	Username  *string   `gorm:"uniqueIndex;type:varchar(30)"`
	FullName  string    `gorm:"type:varchar(120)"`
	AvatarURL string    `gorm:"type:varchar(2048)"`
	Website   string    `gorm:"type:varchar(2048)"`
	Bio       string    `gorm:"type:varchar(500)"`
	Tier      string    `gorm:"not null;type:varchar(20)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *profiles.Profile {
	username := ""
	if m.Username != nil {
		username = *m.Username
	}
	return &profiles.Profile{
		UserID:    m.UserID,
		Username:  username,
		FullName:  m.FullName,
		AvatarURL: m.AvatarURL,
		Website:   m.Website,
		Bio:       m.Bio,
		Tier:      billing.Tier(m.Tier),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model.
// An unset username stores as NULL so the unique index ignores it.
func (m *ProfileModel) FromDomain(p *profiles.Profile) {
	m.UserID = p.UserID
	if p.Username != "" {
		username := p.Username
		m.Username = &username
	} else {
		m.Username = nil
	}
	m.FullName = p.FullName
	m.AvatarURL = p.AvatarURL
	m.Website = p.Website
	m.Bio = p.Bio
	m.Tier = string(p.Tier)
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
