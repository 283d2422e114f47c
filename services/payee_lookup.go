package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

// payeeInfo is the slice of a payee entity the reconciliation core cares
// about: display name, linked login (if any) and contact email.
type payeeInfo struct {
	Name        string
	OwnerUserID *uuid.UUID
}

func lookupPayee(db *gorm.DB, ref models.PayeeRef) (*payeeInfo, error) {
	switch ref.Kind {
	case models.PayeeStreamer:
		var s models.Streamer
		if err := db.First(&s, "id = ?", ref.ID).Error; err != nil {
			return nil, payeeLookupErr(ref, err)
		}
		return &payeeInfo{Name: s.Name, OwnerUserID: s.UserID}, nil
	case models.PayeeVoiceActor:
		var v models.VoiceActor
		if err := db.First(&v, "id = ?", ref.ID).Error; err != nil {
			return nil, payeeLookupErr(ref, err)
		}
		return &payeeInfo{Name: v.Name, OwnerUserID: v.UserID}, nil
	case models.PayeeTeamMember:
		var m models.TeamMember
		if err := db.First(&m, "id = ?", ref.ID).Error; err != nil {
			return nil, payeeLookupErr(ref, err)
		}
		return &payeeInfo{Name: m.Name, OwnerUserID: m.UserID}, nil
	case models.PayeeContentCreator:
		var c models.ContentCreator
		if err := db.First(&c, "id = ?", ref.ID).Error; err != nil {
			return nil, payeeLookupErr(ref, err)
		}
		return &payeeInfo{Name: c.Name, OwnerUserID: c.UserID}, nil
	}
	return nil, apperrors.Validation("unknown payee kind: %s", ref.Kind)
}

func payeeLookupErr(ref models.PayeeRef, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("payee %s not found", ref)
	}
	return apperrors.Internal(err)
}

// FindPayeeForUser resolves which payee entity a logged-in user acts as.
// Used for self-service surfaces (own payment requests, own debt view).
func FindPayeeForUser(userID uuid.UUID) (models.PayeeRef, error) {
	var s models.Streamer
	if err := database.DB.First(&s, "user_id = ?", userID).Error; err == nil {
		return models.PayeeRef{Kind: models.PayeeStreamer, ID: s.ID}, nil
	}
	var v models.VoiceActor
	if err := database.DB.First(&v, "user_id = ?", userID).Error; err == nil {
		return models.PayeeRef{Kind: models.PayeeVoiceActor, ID: v.ID}, nil
	}
	var m models.TeamMember
	if err := database.DB.First(&m, "user_id = ?", userID).Error; err == nil {
		return models.PayeeRef{Kind: models.PayeeTeamMember, ID: m.ID}, nil
	}
	var c models.ContentCreator
	if err := database.DB.First(&c, "user_id = ?", userID).Error; err == nil {
		return models.PayeeRef{Kind: models.PayeeContentCreator, ID: c.ID}, nil
	}
	return models.PayeeRef{}, apperrors.NotFound("no payee profile linked to this account")
}
