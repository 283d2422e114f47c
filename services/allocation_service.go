package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/websocket"
)

// AllocationResult reports which liabilities a lump payment covered and
// the single ledger record it produced.
type AllocationResult struct {
	Payee     models.PayeeRef         `json:"payee"`
	PaidItems []DebtItem              `json:"paid_items"`
	Record    *models.FinancialRecord `json:"record"`
}

// AllocatePayment applies a lump sum against a payee's outstanding
// liabilities, oldest first, whole items only: when the remainder no
// longer covers the next-oldest item the walk stops rather than paying it
// partially. The walk and its one ledger record commit atomically; a
// failure mid-walk rolls everything back.
func AllocatePayment(actor models.AuthContext, payee models.PayeeRef, amount float64) (*AllocationResult, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can allocate payments")
	}
	if amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}

	summary, err := GetDebtSummary(payee)
	if err != nil {
		return nil, err
	}
	if amount > summary.Total {
		return nil, apperrors.Validation("tendered amount %.2f exceeds outstanding debt %.2f", amount, summary.Total)
	}

	result := &AllocationResult{Payee: payee, PaidItems: []DebtItem{}}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		remaining := amount
		var titles []string

		for _, item := range summary.Items {
			if remaining < item.Amount {
				break
			}
			if err := markDebtItemPaid(tx, item); err != nil {
				return err
			}
			remaining -= item.Amount
			result.PaidItems = append(result.PaidItems, item)
			titles = append(titles, item.Title)
			if remaining == 0 {
				break
			}
		}

		record, err := recordExpense(tx, models.CategoryBulkPayment, amount,
			"Bulk payment: "+strings.Join(titles, ", "), payee)
		if err != nil {
			return err
		}
		result.Record = record

		recordAudit(tx, actor, "payment.allocated", "financial_record", record.ID,
			fmt.Sprintf("%s settled %d item(s) with %.2f", payee, len(result.PaidItems), amount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	websocket.Publish(websocket.Event{
		Type:    websocket.EventPaymentRecorded,
		Payload: result.Record,
	})
	return result, nil
}

// markDebtItemPaid flips the paid flag of the liability behind one debt
// item, guarded by its expected pre-state. Zero rows affected means a
// concurrent actor got there first; the whole allocation rolls back.
func markDebtItemPaid(tx *gorm.DB, item DebtItem) error {
	var result *gorm.DB
	switch item.Type {
	case "stream":
		result = tx.Model(&models.Stream{}).
			Where("id = ? AND payment_status = ?", item.ID, models.StreamPaymentPending).
			Update("payment_status", models.StreamPaymentPaid)
	case "voice":
		result = tx.Model(&models.ContentRegistryEntry{}).
			Where("id = ? AND voice_paid = false", item.ID).
			Update("voice_paid", true)
	case "edit":
		result = tx.Model(&models.ContentRegistryEntry{}).
			Where("id = ? AND edit_paid = false", item.ID).
			Update("edit_paid", true)
	default:
		return apperrors.Validation("unknown debt item type: %s", item.Type)
	}
	if result.Error != nil {
		return apperrors.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Conflict("item %q was paid concurrently, allocation aborted", item.Title)
	}
	return nil
}
