package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
	RequestPaid     = "PAID"
)

// PaymentRequest is an ad-hoc reimbursement raised by a payee, not tied to
// any production artifact.
type PaymentRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PayeeKind   PayeeKind `gorm:"size:20;not null" json:"payee_kind"`
	PayeeID     uuid.UUID `gorm:"not null" json:"payee_id"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	AdminNotes      *string `gorm:"type:text" json:"admin_notes"`
	RejectionReason *string `gorm:"type:text" json:"rejection_reason"`

	ApprovedAt *time.Time `json:"approved_at"`
	PaidAt     *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *PaymentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Payee returns the request's payee reference.
func (r *PaymentRequest) Payee() PayeeRef {
	return PayeeRef{Kind: r.PayeeKind, ID: r.PayeeID}
}
