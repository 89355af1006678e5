package models

import "time"

// Loan types
const (
	LoanTypePersonal  = "PERSONAL"
	LoanTypeHome      = "HOME"
	LoanTypeEducation = "EDUCATION"
	LoanTypeVehicle   = "VEHICLE"
	LoanTypeBusiness  = "BUSINESS"
)

// Loan statuses
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
)

type Loan struct {
	ID                 uint    `gorm:"primarykey"`
	UserID             uint    `gorm:"not null;index"`
	LoanType           string  `gorm:"not null"`
	Principal          float64 `gorm:"not null"`
	TenureMonths       int     `gorm:"not null"`
	InterestRate       float64 `gorm:"not null"` // effective annual rate, percent
	MonthlyInstallment float64 `gorm:"not null"`
	TotalInterest      float64 `gorm:"not null"`
	TotalPayable       float64 `gorm:"not null"`
	Status             string  `gorm:"not null;default:'pending'"`
	DecisionReason     string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
