package repositories

import (
	"errors"
	"fmt"

	"finch/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLoanNotFound   = errors.New("loan not found")
	ErrLoanNotPending = errors.New("loan is not pending")
)

// LoanRepository defines the interface for loan-related database operations
type LoanRepository interface {
	Create(loan *models.Loan) error
	GetByID(id uint) (*models.Loan, error)
	GetByUserID(userID uint) ([]models.Loan, error)
	UpdateStatus(loanID uint, status, reason string) error

	// ClaimPending decides a pending loan in a single conditional
	// update. Of two racing decisions only one can win; the loser gets
	// ErrLoanNotPending, so a disbursal can never run twice.
	ClaimPending(loanID uint, status, reason string) error

	List(offset, limit int) ([]models.Loan, int64, error)
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(loan *models.Loan) error {
	if err := r.db.Create(loan).Error; err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

func (r *loanRepository) GetByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return &loan, nil
}

func (r *loanRepository) GetByUserID(userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (r *loanRepository) UpdateStatus(loanID uint, status, reason string) error {
	err := r.db.Model(&models.Loan{}).
		Where("id = ?", loanID).
		Updates(map[string]interface{}{"status": status, "decision_reason": reason}).Error
	if err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}
	return nil
}

func (r *loanRepository) ClaimPending(loanID uint, status, reason string) error {
	res := r.db.Model(&models.Loan{}).
		Where("id = ? AND status = ?", loanID, models.LoanStatusPending).
		Updates(map[string]interface{}{"status": status, "decision_reason": reason})
	if res.Error != nil {
		return fmt.Errorf("failed to update loan status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLoanNotPending
	}
	return nil
}

func (r *loanRepository) List(offset, limit int) ([]models.Loan, int64, error) {
	var loans []models.Loan
	var total int64

	if err := r.db.Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&loans).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, total, nil
}
