package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentCreator struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Niche    *string    `gorm:"size:100" json:"niche"`
	Contact  *string    `gorm:"size:255" json:"contact"`
	UserID   *uuid.UUID `json:"user_id"`
	IsActive bool       `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ContentCreator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
