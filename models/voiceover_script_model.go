package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Single canonical status vocabulary for voiceover scripts. The archived
// flag is orthogonal so hiding a script never rewrites its history.
const (
	ScriptWaitingVoice  = "WAITING_VOICE"
	ScriptVoiceUploaded = "VOICE_UPLOADED"
	ScriptApproved      = "APPROVED"
	ScriptPaid          = "PAID"
	ScriptRejected      = "REJECTED"
)

type VoiceoverScript struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title string    `gorm:"size:255;not null" json:"title"`
	Text  string    `gorm:"type:text;not null" json:"text"`

	Status           string   `gorm:"size:20;not null;default:'WAITING_VOICE'" json:"status"`
	Price            *float64 `gorm:"type:numeric(10,2)" json:"price"`
	ProducerApproved bool     `gorm:"default:false" json:"producer_approved"`
	AdminApproved    bool     `gorm:"default:false" json:"admin_approved"`
	RejectionReason  *string  `gorm:"type:text" json:"rejection_reason"`
	VoiceLink        *string  `gorm:"size:512" json:"voice_link"`
	Archived         bool     `gorm:"default:false" json:"archived"`

	CreatorID    uuid.UUID  `gorm:"not null" json:"creator_id"`
	VoiceActorID *uuid.UUID `json:"voice_actor_id"`

	Creator    ContentCreator `gorm:"foreignkey:CreatorID" json:"-"`
	VoiceActor VoiceActor     `gorm:"foreignkey:VoiceActorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *VoiceoverScript) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
