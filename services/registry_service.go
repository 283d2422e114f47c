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

// Liability names a payable slot on a content-registry entry.
type Liability string

const (
	LiabilityVoice Liability = "voice"
	LiabilityEdit  Liability = "edit"
)

func loadEntry(db *gorm.DB, entryID uuid.UUID) (*models.ContentRegistryEntry, error) {
	var entry models.ContentRegistryEntry
	if err := db.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("registry entry %s not found", entryID)
		}
		return nil, apperrors.Internal(err)
	}
	return &entry, nil
}

// CreateRegistryEntry registers a new production in DRAFT. The voice
// liability may belong to a voice actor or a streamer, never both.
func CreateRegistryEntry(actor models.AuthContext, title string, voiceActorID, streamerID, editorID *uuid.UUID) (*models.ContentRegistryEntry, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleTeamMember {
		return nil, apperrors.Forbidden("only admins and team members can create registry entries")
	}
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if voiceActorID != nil && streamerID != nil {
		return nil, apperrors.Validation("voice liability can belong to a voice actor or a streamer, not both")
	}

	entry := models.ContentRegistryEntry{
		Title:        title,
		Status:       models.EntryDraft,
		VoiceActorID: voiceActorID,
		StreamerID:   streamerID,
		EditorID:     editorID,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Internal(err)
		}
		recordAudit(tx, actor, "entry.created", "content_registry_entry", entry.ID, entry.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// AdvanceEntryStatus moves the production pipeline one stage forward.
// ARCHIVED is reachable from anywhere, admin only. Liabilities are not
// touched here; they move on their own.
func AdvanceEntryStatus(actor models.AuthContext, entryID uuid.UUID, newStatus string) (*models.ContentRegistryEntry, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleTeamMember {
		return nil, apperrors.Forbidden("only admins and team members can move the pipeline")
	}
	newRank := models.EntryStatusRank(newStatus)
	if newRank < 0 {
		return nil, apperrors.Validation("unknown production status: %s", newStatus)
	}

	entry, err := loadEntry(database.DB, entryID)
	if err != nil {
		return nil, err
	}
	currentRank := models.EntryStatusRank(entry.Status)

	if newStatus == models.EntryArchived {
		if !actor.IsAdmin() {
			return nil, apperrors.Forbidden("only admins can archive entries")
		}
	} else if newRank != currentRank+1 {
		return nil, apperrors.Conflict("cannot move entry from %s to %s", entry.Status, newStatus)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ContentRegistryEntry{}).
			Where("id = ? AND status = ?", entry.ID, entry.Status).
			Update("status", newStatus)
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("entry status already changed, refresh and retry")
		}
		recordAudit(tx, actor, "entry.status_changed", "content_registry_entry", entry.ID,
			fmt.Sprintf("%s → %s", entry.Status, newStatus))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadEntry(database.DB, entryID)
}

// SetEntryPrice sets the price of one liability. Pricing opens once the
// entry has reached REVIEW and closes once that liability is paid.
func SetEntryPrice(actor models.AuthContext, entryID uuid.UUID, liability Liability, price float64) (*models.ContentRegistryEntry, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can set prices")
	}
	if price <= 0 {
		return nil, apperrors.Validation("price must be positive")
	}
	entry, err := loadEntry(database.DB, entryID)
	if err != nil {
		return nil, err
	}
	if models.EntryStatusRank(entry.Status) < models.EntryStatusRank(models.EntryReview) {
		return nil, apperrors.Conflict("entry must reach %s before pricing", models.EntryReview)
	}

	var priceColumn, paidColumn string
	switch liability {
	case LiabilityVoice:
		if entry.VoicePaid {
			return nil, apperrors.Conflict("voice liability is already paid")
		}
		priceColumn, paidColumn = "voice_price", "voice_paid"
	case LiabilityEdit:
		if entry.EditPaid {
			return nil, apperrors.Conflict("edit liability is already paid")
		}
		priceColumn, paidColumn = "edit_price", "edit_paid"
	default:
		return nil, apperrors.Validation("liability must be voice or edit")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ContentRegistryEntry{}).
			Where("id = ? AND "+paidColumn+" = false", entry.ID).
			Update(priceColumn, price)
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("liability was paid concurrently")
		}
		recordAudit(tx, actor, "entry.priced", "content_registry_entry", entry.ID,
			fmt.Sprintf("%s %s priced at %.2f", entry.Title, liability, price))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadEntry(database.DB, entryID)
}

// MarkEntryLiabilityPaid settles one liability of a published entry and
// writes exactly one ledger record for its payee. The other liability is
// unaffected.
func MarkEntryLiabilityPaid(actor models.AuthContext, entryID uuid.UUID, liability Liability) (*models.ContentRegistryEntry, *models.FinancialRecord, error) {
	if !actor.IsAdmin() {
		return nil, nil, apperrors.Forbidden("only admins can mark liabilities paid")
	}
	entry, err := loadEntry(database.DB, entryID)
	if err != nil {
		return nil, nil, err
	}
	if models.EntryStatusRank(entry.Status) < models.EntryStatusRank(models.EntryPublished) {
		return nil, nil, apperrors.Conflict("entry must be published before paying")
	}

	var (
		column   string
		category string
		price    *float64
		paid     bool
		payee    models.PayeeRef
	)
	switch liability {
	case LiabilityVoice:
		column, category = "voice_paid", models.CategoryVoice
		price, paid = entry.VoicePrice, entry.VoicePaid
		ref, ok := entry.VoicePayee()
		if !ok {
			return nil, nil, apperrors.Precondition("entry has no voice payee assigned")
		}
		payee = ref
	case LiabilityEdit:
		column, category = "edit_paid", models.CategoryEdit
		price, paid = entry.EditPrice, entry.EditPaid
		if entry.EditorID == nil {
			return nil, nil, apperrors.Precondition("entry has no editor assigned")
		}
		payee = models.PayeeRef{Kind: models.PayeeTeamMember, ID: *entry.EditorID}
	default:
		return nil, nil, apperrors.Validation("liability must be voice or edit")
	}
	if paid {
		return nil, nil, apperrors.Conflict("%s liability is already paid", liability)
	}
	if price == nil || *price <= 0 {
		return nil, nil, apperrors.Precondition("%s liability has no price set", liability)
	}

	var record *models.FinancialRecord
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ContentRegistryEntry{}).
			Where("id = ? AND "+column+" = false", entry.ID).
			Update(column, true)
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("%s liability is already paid", liability)
		}

		record, err = recordExpense(tx, category, *price,
			fmt.Sprintf("%s (%s)", entry.Title, liability), payee)
		if err != nil {
			return err
		}
		recordAudit(tx, actor, "entry.liability_paid", "content_registry_entry", entry.ID,
			fmt.Sprintf("%s %s paid %.2f", entry.Title, liability, *price))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	websocket.Publish(websocket.Event{
		Type:    websocket.EventPaymentRecorded,
		Payload: record,
	})

	entry, err = loadEntry(database.DB, entryID)
	return entry, record, err
}
