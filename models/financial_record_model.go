package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecordIncome  = "income"
	RecordExpense = "expense"
)

// Expense categories emitted by the core.
const (
	CategoryVoiceover      = "voiceover"
	CategoryVoice          = "voice"
	CategoryEdit           = "edit"
	CategoryStream         = "stream"
	CategoryPaymentRequest = "payment-request"
	CategoryBulkPayment    = "bulk-payment"
)

// FinancialRecord is immutable once created. It is only ever written as the
// side effect of an explicit payment action; no code path updates or
// deletes one.
type FinancialRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Type        string     `gorm:"size:10;not null" json:"type"`
	Category    string     `gorm:"size:50;not null" json:"category"`
	Amount      float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Description string     `gorm:"type:text" json:"description"`
	PayeeKind   *PayeeKind `gorm:"size:20" json:"payee_kind"`
	PayeeID     *uuid.UUID `json:"payee_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *FinancialRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	return nil
}
