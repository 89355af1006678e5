package models

import "time"

// Card kinds
const (
	CardKindCredit = "credit"
	CardKindDebit  = "debit"
)

// Card represents a stored payment card. The PAN is never persisted;
// only the issuer token and the last four digits are kept.
type Card struct {
	ID          uint   `gorm:"primarykey"`
	UserID      uint   `gorm:"not null;index"`
	Token       string `gorm:"not null"`
	Kind        string `gorm:"not null"` // credit or debit
	Network     string `gorm:"not null"` // Visa, Mastercard, ...
	LastFour    string `gorm:"not null"`
	ExpiryMonth string `gorm:"not null"`
	ExpiryYear  string `gorm:"not null"`
	PINHash     string `gorm:"not null" json:"-"`
	IsDefault   bool   `gorm:"default:false"`
	Status      string `gorm:"default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LinkCardInput represents the input for linking a new card
type LinkCardInput struct {
	CardNumber  string `json:"card_number"`
	Kind        string `json:"kind"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	PIN         string `json:"pin"`
}
