package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/websocket"
)

type scriptAction string

const (
	actionCreatorApprove scriptAction = "creator_approve"
	actionAdminApprove   scriptAction = "admin_approve"
	actionMarkPaid       scriptAction = "mark_paid"
	actionReject         scriptAction = "reject"
)

// scriptTransitions is the legal state machine for voiceover scripts:
// current status × action → next status. Anything absent is a conflict.
var scriptTransitions = map[string]map[scriptAction]string{
	models.ScriptWaitingVoice: {
		actionCreatorApprove: models.ScriptVoiceUploaded,
		actionReject:         models.ScriptRejected,
	},
	models.ScriptVoiceUploaded: {
		actionAdminApprove: models.ScriptApproved,
		actionReject:       models.ScriptRejected,
	},
	models.ScriptApproved: {
		actionMarkPaid: models.ScriptPaid,
	},
}

func scriptNextStatus(current string, action scriptAction) (string, error) {
	next, ok := scriptTransitions[current][action]
	if !ok {
		return "", apperrors.Conflict("script in status %s does not allow %s", current, action)
	}
	return next, nil
}

func loadScript(db *gorm.DB, scriptID uuid.UUID) (*models.VoiceoverScript, error) {
	var script models.VoiceoverScript
	if err := db.First(&script, "id = ?", scriptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("script %s not found", scriptID)
		}
		return nil, apperrors.Internal(err)
	}
	return &script, nil
}

// CreateScript registers a new voiceover script in WAITING_VOICE. Creators
// always create on their own behalf; admins must name the creator.
func CreateScript(actor models.AuthContext, title, text string, creatorID *uuid.UUID, voiceActorID *uuid.UUID) (*models.VoiceoverScript, error) {
	if title == "" || text == "" {
		return nil, apperrors.Validation("title and text are required")
	}

	var ownerID uuid.UUID
	switch actor.Role {
	case models.RoleCreator:
		var creator models.ContentCreator
		if err := database.DB.First(&creator, "user_id = ?", actor.ActorID).Error; err != nil {
			return nil, apperrors.Forbidden("no creator profile linked to this account")
		}
		ownerID = creator.ID
	case models.RoleAdmin:
		if creatorID == nil {
			return nil, apperrors.Validation("creator_id is required")
		}
		ownerID = *creatorID
	default:
		return nil, apperrors.Forbidden("only creators and admins can create scripts")
	}

	script := models.VoiceoverScript{
		Title:        title,
		Text:         text,
		Status:       models.ScriptWaitingVoice,
		CreatorID:    ownerID,
		VoiceActorID: voiceActorID,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&script).Error; err != nil {
			return apperrors.Internal(err)
		}
		recordAudit(tx, actor, "script.created", "voiceover_script", script.ID, script.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &script, nil
}

// AttachVoiceLink stores the recorded voice artifact link while the script
// is still waiting on voice. Upload mechanics live elsewhere; the core only
// keeps the reference.
func AttachVoiceLink(actor models.AuthContext, scriptID uuid.UUID, link string) (*models.VoiceoverScript, error) {
	if link == "" {
		return nil, apperrors.Validation("voice link is required")
	}
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if script.VoiceActorID == nil {
			return nil, apperrors.Forbidden("script has no assigned voice actor")
		}
		var va models.VoiceActor
		if err := database.DB.First(&va, "id = ?", *script.VoiceActorID).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		if va.UserID == nil || *va.UserID != actor.ActorID {
			return nil, apperrors.Forbidden("only the assigned voice actor can attach a voice link")
		}
	}
	if script.Status != models.ScriptWaitingVoice {
		return nil, apperrors.Conflict("script in status %s no longer accepts voice links", script.Status)
	}

	result := database.DB.Model(&models.VoiceoverScript{}).
		Where("id = ? AND status = ?", script.ID, models.ScriptWaitingVoice).
		Update("voice_link", link)
	if result.Error != nil {
		return nil, apperrors.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.Conflict("script status changed, refresh and retry")
	}
	return loadScript(database.DB, scriptID)
}

// ApproveScriptAsCreator moves WAITING_VOICE → VOICE_UPLOADED once the
// owning creator has listened to the uploaded voice. Only the script's own
// creator may do this.
func ApproveScriptAsCreator(actor models.AuthContext, scriptID uuid.UUID) (*models.VoiceoverScript, error) {
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, err
	}

	var creator models.ContentCreator
	if err := database.DB.First(&creator, "id = ?", script.CreatorID).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if creator.UserID == nil || *creator.UserID != actor.ActorID {
		return nil, apperrors.Forbidden("only the script's creator can approve the voice")
	}
	if script.VoiceLink == nil || *script.VoiceLink == "" {
		return nil, apperrors.Precondition("no voice has been uploaded for this script")
	}
	next, err := scriptNextStatus(script.Status, actionCreatorApprove)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VoiceoverScript{}).
			Where("id = ? AND status = ?", script.ID, models.ScriptWaitingVoice).
			Updates(map[string]interface{}{
				"status":            next,
				"producer_approved": true,
			})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("script status already advanced")
		}
		recordAudit(tx, actor, "script.creator_approved", "voiceover_script", script.ID, script.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadScript(database.DB, scriptID)
}

// ApproveScriptWithPrice is the admin gate: sets the price and moves
// VOICE_UPLOADED → APPROVED in one step.
func ApproveScriptWithPrice(actor models.AuthContext, scriptID uuid.UUID, price float64) (*models.VoiceoverScript, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can approve and price scripts")
	}
	if price <= 0 {
		return nil, apperrors.Validation("price must be positive")
	}
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, err
	}
	next, err := scriptNextStatus(script.Status, actionAdminApprove)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VoiceoverScript{}).
			Where("id = ? AND status = ?", script.ID, models.ScriptVoiceUploaded).
			Updates(map[string]interface{}{
				"status":         next,
				"price":          price,
				"admin_approved": true,
			})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("script status already advanced")
		}
		recordAudit(tx, actor, "script.admin_approved", "voiceover_script", script.ID,
			fmt.Sprintf("%s priced at %.2f", script.Title, price))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadScript(database.DB, scriptID)
}

// MarkScriptPaid settles an approved script: APPROVED → PAID plus exactly
// one ledger record for the voice actor. A second call conflicts and never
// duplicates the record.
func MarkScriptPaid(actor models.AuthContext, scriptID uuid.UUID) (*models.VoiceoverScript, *models.FinancialRecord, error) {
	if !actor.IsAdmin() {
		return nil, nil, apperrors.Forbidden("only admins can mark scripts paid")
	}
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := scriptNextStatus(script.Status, actionMarkPaid); err != nil {
		return nil, nil, err
	}
	if script.Price == nil || *script.Price <= 0 {
		return nil, nil, apperrors.Precondition("script has no price set")
	}
	if script.VoiceActorID == nil {
		return nil, nil, apperrors.Precondition("script has no voice actor to pay")
	}

	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: *script.VoiceActorID}
	var record *models.FinancialRecord
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VoiceoverScript{}).
			Where("id = ? AND status = ?", script.ID, models.ScriptApproved).
			Update("status", models.ScriptPaid)
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("script is not awaiting payment")
		}

		record, err = recordExpense(tx, models.CategoryVoiceover, *script.Price,
			fmt.Sprintf("Voiceover: %s", script.Title), payee)
		if err != nil {
			return err
		}
		recordAudit(tx, actor, "script.paid", "voiceover_script", script.ID,
			fmt.Sprintf("%s paid %.2f", script.Title, *script.Price))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	websocket.Publish(websocket.Event{
		Type:    websocket.EventPaymentRecorded,
		Payload: record,
	})

	script, err = loadScript(database.DB, scriptID)
	return script, record, err
}

// RejectScript moves a non-terminal script to REJECTED with a reason.
// Admins and the owning creator may reject.
func RejectScript(actor models.AuthContext, scriptID uuid.UUID, reason string) (*models.VoiceoverScript, error) {
	if reason == "" {
		return nil, apperrors.Validation("a rejection reason is required")
	}
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		var creator models.ContentCreator
		if err := database.DB.First(&creator, "id = ?", script.CreatorID).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		if creator.UserID == nil || *creator.UserID != actor.ActorID {
			return nil, apperrors.Forbidden("only admins or the script's creator can reject it")
		}
	}
	if _, err := scriptNextStatus(script.Status, actionReject); err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VoiceoverScript{}).
			Where("id = ? AND status = ?", script.ID, script.Status).
			Updates(map[string]interface{}{
				"status":           models.ScriptRejected,
				"rejection_reason": reason,
			})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("script status already advanced")
		}
		recordAudit(tx, actor, "script.rejected", "voiceover_script", script.ID, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadScript(database.DB, scriptID)
}

// ArchiveScript hides a script from default listings. History is kept; the
// status is untouched.
func ArchiveScript(actor models.AuthContext, scriptID uuid.UUID) (*models.VoiceoverScript, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can archive scripts")
	}
	script, err := loadScript(database.DB, scriptID)
	if err != nil {
		return nil, err
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VoiceoverScript{}).
			Where("id = ?", script.ID).
			Update("archived", true).Error; err != nil {
			return apperrors.Internal(err)
		}
		recordAudit(tx, actor, "script.archived", "voiceover_script", script.ID, script.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadScript(database.DB, scriptID)
}
