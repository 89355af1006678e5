// Package account exposes the sender account snapshot and the recipient
// directory used by the transfer workflow.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/repositories/cache"
	"finch/internal/services/transfer"
	"finch/internal/validation"
)

var ErrAccountNotFound = errors.New("account not found")

type Service interface {
	// GetSnapshot returns the caller's account, served from cache when
	// fresh enough to be a valid validation snapshot.
	GetSnapshot(ctx context.Context, userID uint) (*models.Account, error)

	// VerifyRecipient implements transfer.Directory.
	VerifyRecipient(ctx context.Context, identifier string) (*transfer.Beneficiary, error)

	Freeze(ctx context.Context, accountID uint, reason string) error
	Unfreeze(ctx context.Context, accountID uint) error
}

type service struct {
	accounts repositories.AccountRepository
	users    repositories.UserRepository
	cache    *cache.CacheService
}

func NewService(accounts repositories.AccountRepository, users repositories.UserRepository, cacheService *cache.CacheService) Service {
	return &service{
		accounts: accounts,
		users:    users,
		cache:    cacheService,
	}
}

func (s *service) GetSnapshot(ctx context.Context, userID uint) (*models.Account, error) {
	if s.cache != nil {
		if account, err := s.cache.GetAccount(ctx, userID); err == nil && account != nil {
			return account, nil
		}
	}

	account, err := s.accounts.GetByUserID(userID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.CacheAccount(ctx, account)
	}
	return account, nil
}

// VerifyRecipient resolves an account number or username to a
// beneficiary. Unknown identifiers map to transfer.ErrRecipientNotFound
// so the workflow degrades to rejected, never to an open submission.
func (s *service) VerifyRecipient(ctx context.Context, identifier string) (*transfer.Beneficiary, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, transfer.ErrRecipientNotFound
	}

	if validation.LooksLikeAccountNumber(identifier) {
		account, err := s.accounts.GetByAccountNumber(identifier)
		if err != nil {
			if err == repositories.ErrAccountNotFound {
				return nil, transfer.ErrRecipientNotFound
			}
			return nil, fmt.Errorf("recipient lookup failed: %w", err)
		}
		owner, err := s.users.GetByID(account.UserID)
		if err != nil {
			return nil, fmt.Errorf("recipient lookup failed: %w", err)
		}
		return &transfer.Beneficiary{
			FullName:      owner.Name,
			Username:      owner.Username,
			AccountNumber: account.AccountNumber,
		}, nil
	}

	owner, err := s.users.GetByUsername(identifier)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, transfer.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("recipient lookup failed: %w", err)
	}
	account, err := s.accounts.GetByUserID(owner.ID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, transfer.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("recipient lookup failed: %w", err)
	}
	return &transfer.Beneficiary{
		FullName:      owner.Name,
		Username:      owner.Username,
		AccountNumber: account.AccountNumber,
	}, nil
}

func (s *service) Freeze(ctx context.Context, accountID uint, reason string) error {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdateStatus(accountID, models.AccountStatusFrozen, reason); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAccount(ctx, account.UserID)
	}
	return nil
}

func (s *service) Unfreeze(ctx context.Context, accountID uint) error {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdateStatus(accountID, models.AccountStatusActive, ""); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAccount(ctx, account.UserID)
	}
	return nil
}
