package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeTransfer     = "TRANSFER"
	TransactionTypeCardPayment  = "CARD_PAYMENT"
	TransactionTypeBillPayment  = "BILL_PAYMENT"
	TransactionTypeLoanDisburse = "LOAN_DISBURSAL"
	TransactionTypeDeposit      = "DEPOSIT"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID            uint    `gorm:"primarykey"`
	Type          string  `gorm:"not null"`
	FromAccountID uint    `gorm:"not null;index"`
	ToAccountID   *uint   `gorm:"index"` // nil for card/bill payments leaving the bank
	Amount        float64 `gorm:"not null"`
	Remarks       string
	Status        string `gorm:"not null;default:'pending'"`
	Reference     string `gorm:"uniqueIndex;not null"` // External reference ID
	CardID        *uint  // Optional card reference
	BillID        *uint  // Optional bill reference
	Metadata      JSON   `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
