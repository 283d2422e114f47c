package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StreamPaymentPending = "pending"
	StreamPaymentPaid    = "paid"
)

type Stream struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StreamerID    uuid.UUID `gorm:"not null" json:"streamer_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	StreamDate    time.Time `gorm:"not null" json:"stream_date"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentStatus string    `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	Streamer Streamer `gorm:"foreignkey:StreamerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Stream) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
