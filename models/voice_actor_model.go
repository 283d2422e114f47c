package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoiceActor struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Contact  *string    `gorm:"size:255" json:"contact"`
	RatePerScript *float64 `gorm:"type:numeric(10,2)" json:"rate_per_script"`
	UserID   *uuid.UUID `json:"user_id"`
	IsActive bool       `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *VoiceActor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
