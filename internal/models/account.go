package models

import (
	"time"

	"gorm.io/gorm"
)

// Account statuses
const (
	AccountStatusActive = "active"
	AccountStatusFrozen = "frozen"
)

type Account struct {
	ID            uint    `gorm:"primarykey"`
	UserID        uint    `gorm:"uniqueIndex;not null"`
	AccountNumber string  `gorm:"uniqueIndex;not null"` // e.g. BK1234567
	Balance       float64 `gorm:"default:0"`
	Currency      string  `gorm:"default:'INR'"`
	Status        string  `gorm:"default:'active'"`
	StatusReason  string  `gorm:"default:''"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	// Ensure balance starts at 0
	a.Balance = 0.0
	return nil
}
