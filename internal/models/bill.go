package models

import "time"

// Bill statuses
const (
	BillStatusDue     = "due"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// Payment channels a bill can be settled through
const (
	BillPaidViaAccount = "account"
	BillPaidViaCard    = "card"
)

type Bill struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"not null;index"`
	Biller    string  `gorm:"not null"`
	Category  string  `gorm:"not null"` // electricity, water, broadband, ...
	Amount    float64 `gorm:"not null"`
	DueDate   time.Time
	Status    string `gorm:"not null;default:'due'"`
	PaidVia   string
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
