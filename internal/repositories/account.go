package repositories

import (
	"context"
	"errors"
	"fmt"

	"finch/internal/models"
	"finch/internal/repositories/cache"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// AccountRepository defines the interface for account-related database operations
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByUserID(userID uint) (*models.Account, error)
	GetByAccountNumber(number string) (*models.Account, error)
	Update(account *models.Account) error
	UpdateStatus(accountID uint, status, reason string) error

	CreateTransaction(tx *models.Transaction) error

	// ExecuteInTransaction runs fn inside a single database transaction.
	ExecuteInTransaction(fn func(AccountRepository) error) error
}

type accountRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewAccountRepository(db *gorm.DB, cacheService *cache.CacheService) AccountRepository {
	return &accountRepository{db: db, cache: cacheService}
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUserID(userID uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByAccountNumber(number string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("account_number = ?", number).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateAccount(context.Background(), account.UserID)
	}
	return nil
}

func (r *accountRepository) UpdateStatus(accountID uint, status, reason string) error {
	err := r.db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{"status": status, "status_reason": reason}).Error
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *accountRepository) ExecuteInTransaction(fn func(AccountRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx, cache: r.cache})
	})
}
