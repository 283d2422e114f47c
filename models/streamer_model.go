package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Streamer struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Channel  *string    `gorm:"size:255" json:"channel"`
	Contact  *string    `gorm:"size:255" json:"contact"`
	UserID   *uuid.UUID `json:"user_id"`
	IsActive bool       `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Streamer) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
