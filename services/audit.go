package services

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olehks/content_studio/models"
)

// recordAudit appends one audit event inside the caller's transaction so a
// rolled-back mutation never leaves a stray event behind. A failed append
// is logged but does not fail the mutation itself.
func recordAudit(tx *gorm.DB, actor models.AuthContext, action, entityType string, entityID uuid.UUID, detail string) {
	event := models.AuditEvent{
		ActorID:    actor.ActorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := tx.Create(&event).Error; err != nil {
		log.Printf("Failed to append audit event %s %s/%s: %v", action, entityType, entityID, err)
	}
}
