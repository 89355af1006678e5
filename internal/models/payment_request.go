package models

import "time"

// PaymentRequest statuses
const (
	PaymentRequestActive  = "active"
	PaymentRequestExpired = "expired"
	PaymentRequestRevoked = "revoked"
)

// PaymentRequest is a UPI collect request rendered as a QR payload.
// Generating one is a terminal action: no ledger mutation happens here.
type PaymentRequest struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index"`
	Code      string `gorm:"uniqueIndex;not null"`
	VPA       string `gorm:"not null"` // virtual payment address, e.g. user@finch
	Payload   string `gorm:"not null"` // upi://pay?... string encoded into the QR
	Amount    *float64
	Remarks   string
	Status    string `gorm:"not null;default:'active'"`
	ExpiresAt *time.Time
	Metadata  JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
