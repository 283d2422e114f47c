package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
	"github.com/olehks/content_studio/websocket"
)

func loadPaymentRequest(db *gorm.DB, id uuid.UUID) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment request %s not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &request, nil
}

// CreatePaymentRequest lets a payee raise an ad-hoc reimbursement. Admins
// may raise one on a payee's behalf; everyone else only for the payee
// profile linked to their own account.
func CreatePaymentRequest(actor models.AuthContext, payee models.PayeeRef, reqType string, amount float64, description string) (*models.PaymentRequest, error) {
	if err := payee.Validate(); err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	if reqType == "" {
		return nil, apperrors.Validation("request type is required")
	}
	if amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}
	if description == "" {
		return nil, apperrors.Validation("description is required")
	}

	info, err := lookupPayee(database.DB, payee)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if info.OwnerUserID == nil || *info.OwnerUserID != actor.ActorID {
			return nil, apperrors.Forbidden("payment requests can only be raised for your own payee profile")
		}
	}

	request := models.PaymentRequest{
		PayeeKind:   payee.Kind,
		PayeeID:     payee.ID,
		Type:        reqType,
		Amount:      amount,
		Description: description,
		Status:      models.RequestPending,
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return apperrors.Internal(err)
		}
		recordAudit(tx, actor, "request.created", "payment_request", request.ID, description)
		return nil
	})
	if err != nil {
		return nil, err
	}

	websocket.Publish(websocket.Event{Type: websocket.EventRequestCreated, Payload: &request})
	return &request, nil
}

// ApprovePaymentRequest moves PENDING → APPROVED.
func ApprovePaymentRequest(actor models.AuthContext, id uuid.UUID, adminNotes string) (*models.PaymentRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can approve payment requests")
	}
	request, err := loadPaymentRequest(database.DB, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.Conflict("request in status %s cannot be approved", request.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      models.RequestApproved,
			"approved_at": time.Now(),
		}
		if adminNotes != "" {
			updates["admin_notes"] = adminNotes
		}
		result := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Updates(updates)
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("request status already changed")
		}
		recordAudit(tx, actor, "request.approved", "payment_request", request.ID, adminNotes)
		return nil
	})
	if err != nil {
		return nil, err
	}

	request, err = loadPaymentRequest(database.DB, id)
	if err == nil {
		websocket.Publish(websocket.Event{Type: websocket.EventRequestUpdated, Payload: request})
	}
	return request, err
}

// RejectPaymentRequest moves PENDING → REJECTED; a reason is mandatory.
func RejectPaymentRequest(actor models.AuthContext, id uuid.UUID, reason string) (*models.PaymentRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can reject payment requests")
	}
	if reason == "" {
		return nil, apperrors.Validation("a rejection reason is required")
	}
	request, err := loadPaymentRequest(database.DB, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.Conflict("request in status %s cannot be rejected", request.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":           models.RequestRejected,
				"rejection_reason": reason,
			})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("request status already changed")
		}
		recordAudit(tx, actor, "request.rejected", "payment_request", request.ID, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}

	request, err = loadPaymentRequest(database.DB, id)
	if err == nil {
		websocket.Publish(websocket.Event{Type: websocket.EventRequestUpdated, Payload: request})
	}
	return request, err
}

// MarkPaymentRequestPaid settles an approved request after explicit
// confirmation and emits one ledger record for the requesting payee.
func MarkPaymentRequestPaid(actor models.AuthContext, id uuid.UUID, confirmed bool) (*models.PaymentRequest, *models.FinancialRecord, error) {
	if !actor.IsAdmin() {
		return nil, nil, apperrors.Forbidden("only admins can pay payment requests")
	}
	if !confirmed {
		return nil, nil, apperrors.Validation("payment must be explicitly confirmed")
	}
	request, err := loadPaymentRequest(database.DB, id)
	if err != nil {
		return nil, nil, err
	}
	if request.Status != models.RequestApproved {
		return nil, nil, apperrors.Conflict("request in status %s cannot be paid", request.Status)
	}

	var record *models.FinancialRecord
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PaymentRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestApproved).
			Updates(map[string]interface{}{
				"status":  models.RequestPaid,
				"paid_at": time.Now(),
			})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("request status already changed")
		}

		record, err = recordExpense(tx, models.CategoryPaymentRequest, request.Amount,
			fmt.Sprintf("%s: %s", request.Type, request.Description), request.Payee())
		if err != nil {
			return err
		}
		recordAudit(tx, actor, "request.paid", "payment_request", request.ID,
			fmt.Sprintf("paid %.2f", request.Amount))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	websocket.Publish(websocket.Event{Type: websocket.EventPaymentRecorded, Payload: record})
	request, err = loadPaymentRequest(database.DB, id)
	return request, record, err
}

// DeletePaymentRequest is self-service retraction: the owning payee may
// delete a request only while it is still PENDING. Anything past approval
// stays for audit integrity.
func DeletePaymentRequest(actor models.AuthContext, id uuid.UUID) error {
	request, err := loadPaymentRequest(database.DB, id)
	if err != nil {
		return err
	}

	info, err := lookupPayee(database.DB, request.Payee())
	if err != nil {
		return err
	}
	if info.OwnerUserID == nil || *info.OwnerUserID != actor.ActorID {
		return apperrors.Forbidden("only the owning payee can retract a payment request")
	}
	if request.Status != models.RequestPending {
		return apperrors.Conflict("only pending requests can be deleted")
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Delete(&models.PaymentRequest{})
		if result.Error != nil {
			return apperrors.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("request status already changed")
		}
		recordAudit(tx, actor, "request.deleted", "payment_request", request.ID, request.Description)
		return nil
	})
}

// ListPaymentRequests returns requests for the admin surface, optionally
// filtered by status.
func ListPaymentRequests(status string) ([]models.PaymentRequest, error) {
	query := database.DB.Model(&models.PaymentRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.PaymentRequest
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return requests, nil
}

// ListOwnPaymentRequests returns the requests raised by the payee profile
// linked to the acting user.
func ListOwnPaymentRequests(actor models.AuthContext) ([]models.PaymentRequest, error) {
	payee, err := FindPayeeForUser(actor.ActorID)
	if err != nil {
		return nil, err
	}
	var requests []models.PaymentRequest
	err = database.DB.
		Where("payee_kind = ? AND payee_id = ?", payee.Kind, payee.ID).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return requests, nil
}
