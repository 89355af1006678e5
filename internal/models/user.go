package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string   `gorm:"uniqueIndex;not null"` // Unique index on Email
	Password            string   `gorm:"not null" json:"-"`
	Name                string   `gorm:"not null"`
	Username            string   `gorm:"uniqueIndex;not null"` // Unique index on Username
	Role                string   `gorm:"default:'user'"`
	Status              string   `gorm:"default:'active'"`
	AccountID           *uint    `gorm:"unique;default:null"` // Pointer to allow NULL until the account is opened
	Account             *Account `gorm:"foreignKey:AccountID"`
	LastLoginAt         time.Time
	FailedLoginAttempts int `gorm:"default:0"`
	TokenVersion        int `gorm:"default:1"`
}
