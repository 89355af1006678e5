package transfer

import (
	"context"
	"fmt"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/google/uuid"
)

// service implements the transfer Service interface.
type service struct {
	accounts repositories.AccountRepository
}

// NewService creates a new transfer service instance.
func NewService(accounts repositories.AccountRepository) Service {
	return &service{accounts: accounts}
}

// Transfer moves funds between two accounts atomically and returns the
// recorded transaction together with the sender's balance afterwards.
// Every constraint checked by the workflow is re-checked here: the
// server is the sole arbiter.
func (s *service) Transfer(ctx context.Context, senderUserID uint, toAccountNumber string, amount float64, remarks string) (*models.Transaction, float64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}

	sender, err := s.accounts.GetByUserID(senderUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load sender account: %w", err)
	}
	if sender.Status != models.AccountStatusActive {
		return nil, 0, ErrAccountFrozen
	}
	if sender.AccountNumber == toAccountNumber {
		return nil, 0, ErrSelfTransfer
	}

	tx := &models.Transaction{
		Type:          models.TransactionTypeTransfer,
		FromAccountID: sender.ID,
		Amount:        amount,
		Remarks:       remarks,
		Status:        models.TransactionStatusPending,
		Reference:     "TXN-" + uuid.NewString(),
	}

	var balanceAfter float64
	err = s.accounts.ExecuteInTransaction(func(repo repositories.AccountRepository) error {
		from, err := repo.GetByUserID(senderUserID)
		if err != nil {
			return err
		}
		if from.Balance < amount {
			return ErrInsufficientFunds
		}

		to, err := repo.GetByAccountNumber(toAccountNumber)
		if err != nil {
			if err == repositories.ErrAccountNotFound {
				return ErrRecipientNotFound
			}
			return err
		}
		if to.Status != models.AccountStatusActive {
			return ErrAccountFrozen
		}

		from.Balance -= amount
		to.Balance += amount
		if err := repo.Update(from); err != nil {
			return err
		}
		if err := repo.Update(to); err != nil {
			return err
		}

		tx.ToAccountID = &to.ID
		tx.Status = models.TransactionStatusCompleted
		balanceAfter = from.Balance
		return repo.CreateTransaction(tx)
	})
	if err != nil {
		return nil, 0, err
	}

	return tx, balanceAfter, nil
}
