package repositories

import (
	"errors"
	"fmt"

	"finch/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentRequestNotFound = errors.New("payment request not found")

// PaymentRequestRepository stores UPI collect-request records
type PaymentRequestRepository interface {
	Create(pr *models.PaymentRequest) error
	GetByCode(code string) (*models.PaymentRequest, error)
	GetByUserID(userID uint) ([]models.PaymentRequest, error)
	UpdateStatus(id uint, status string) error
}

type paymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) PaymentRequestRepository {
	return &paymentRequestRepository{db: db}
}

func (r *paymentRequestRepository) Create(pr *models.PaymentRequest) error {
	if err := r.db.Create(pr).Error; err != nil {
		return fmt.Errorf("failed to create payment request: %w", err)
	}
	return nil
}

func (r *paymentRequestRepository) GetByCode(code string) (*models.PaymentRequest, error) {
	var pr models.PaymentRequest
	if err := r.db.Where("code = ?", code).First(&pr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentRequestNotFound
		}
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	return &pr, nil
}

func (r *paymentRequestRepository) GetByUserID(userID uint) ([]models.PaymentRequest, error) {
	var prs []models.PaymentRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&prs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return prs, nil
}

func (r *paymentRequestRepository) UpdateStatus(id uint, status string) error {
	err := r.db.Model(&models.PaymentRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update payment request: %w", err)
	}
	return nil
}
