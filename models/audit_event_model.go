package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEvent is an append-only record of a state change or money movement.
type AuditEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ActorID    uuid.UUID `gorm:"not null" json:"actor_id"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	EntityType string    `gorm:"size:50;not null" json:"entity_type"`
	EntityID   uuid.UUID `gorm:"not null" json:"entity_id"`
	Detail     string    `gorm:"type:text" json:"detail"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
