package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Production pipeline statuses for a content-registry entry. The pipeline
// tracks workflow only; the two liabilities below move independently.
const (
	EntryDraft       = "DRAFT"
	EntryScriptReady = "SCRIPT_READY"
	EntryVoiceReady  = "VOICE_READY"
	EntryEditing     = "EDITING"
	EntryReview      = "REVIEW"
	EntryPublished   = "PUBLISHED"
	EntryArchived    = "ARCHIVED"
)

var entryStatusRank = map[string]int{
	EntryDraft:       0,
	EntryScriptReady: 1,
	EntryVoiceReady:  2,
	EntryEditing:     3,
	EntryReview:      4,
	EntryPublished:   5,
	EntryArchived:    6,
}

// EntryStatusRank returns the pipeline position of a status, or -1 for an
// unknown one.
func EntryStatusRank(status string) int {
	rank, ok := entryStatusRank[status]
	if !ok {
		return -1
	}
	return rank
}

// ContentRegistryEntry carries two independent payable liabilities (voice,
// edit) under one production status. The voice liability belongs to either
// a voice actor or a streamer, never both.
type ContentRegistryEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title  string    `gorm:"size:255;not null" json:"title"`
	Status string    `gorm:"size:20;not null;default:'DRAFT'" json:"status"`

	VoicePrice *float64 `gorm:"type:numeric(10,2)" json:"voice_price"`
	VoicePaid  bool     `gorm:"default:false" json:"voice_paid"`
	EditPrice  *float64 `gorm:"type:numeric(10,2)" json:"edit_price"`
	EditPaid   bool     `gorm:"default:false" json:"edit_paid"`

	VoiceActorID *uuid.UUID `json:"voice_actor_id"`
	StreamerID   *uuid.UUID `json:"streamer_id"`
	EditorID     *uuid.UUID `json:"editor_id"`

	VoiceActor VoiceActor `gorm:"foreignkey:VoiceActorID" json:"-"`
	Streamer   Streamer   `gorm:"foreignkey:StreamerID" json:"-"`
	Editor     TeamMember `gorm:"foreignkey:EditorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ContentRegistryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// VoicePayee resolves which payee the voice liability belongs to. Returns
// false when neither reference is populated.
func (e *ContentRegistryEntry) VoicePayee() (PayeeRef, bool) {
	if e.VoiceActorID != nil {
		return PayeeRef{Kind: PayeeVoiceActor, ID: *e.VoiceActorID}, true
	}
	if e.StreamerID != nil {
		return PayeeRef{Kind: PayeeStreamer, ID: *e.StreamerID}, true
	}
	return PayeeRef{}, false
}
