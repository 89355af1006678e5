package repositories

import (
	"errors"
	"fmt"

	"finch/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository defines the interface for transaction history access
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	GetByReference(reference string) (*models.Transaction, error)
	GetByAccountID(accountID uint, offset, limit int) ([]models.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetByAccountID(accountID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	base := r.db.Model(&models.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}
