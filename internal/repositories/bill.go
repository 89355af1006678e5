package repositories

import (
	"errors"
	"fmt"
	"time"

	"finch/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrBillAlreadyPaid = errors.New("bill is already paid")
)

// BillRepository defines the interface for bill-related database operations
type BillRepository interface {
	Create(bill *models.Bill) error
	GetByID(id uint) (*models.Bill, error)
	GetByUserID(userID uint) ([]models.Bill, error)
	Update(bill *models.Bill) error

	// MarkPaid settles an unpaid bill in a single conditional update.
	// Of two racing payments only one can win; the loser gets
	// ErrBillAlreadyPaid before any money moves.
	MarkPaid(billID uint, via string, paidAt time.Time) error
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(bill *models.Bill) error {
	if err := r.db.Create(bill).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *billRepository) GetByID(id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) GetByUserID(userID uint) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Where("user_id = ?", userID).Order("due_date ASC").Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (r *billRepository) Update(bill *models.Bill) error {
	if err := r.db.Save(bill).Error; err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return nil
}

func (r *billRepository) MarkPaid(billID uint, via string, paidAt time.Time) error {
	res := r.db.Model(&models.Bill{}).
		Where("id = ? AND status <> ?", billID, models.BillStatusPaid).
		Updates(map[string]interface{}{
			"status":   models.BillStatusPaid,
			"paid_via": via,
			"paid_at":  paidAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark bill paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBillAlreadyPaid
	}
	return nil
}
