package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamMember struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Position *string    `gorm:"size:100" json:"position"`
	Contact  *string    `gorm:"size:255" json:"contact"`
	IsEditor bool       `gorm:"default:false" json:"is_editor"`
	UserID   *uuid.UUID `json:"user_id"`
	IsActive bool       `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
