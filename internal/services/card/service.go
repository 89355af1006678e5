package card

import (
	"context"
	"fmt"
	"log"

	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for card operations
type Service interface {
	LinkCard(ctx context.Context, userID uint, input models.LinkCardInput) (*models.Card, error)
	GetUserCards(ctx context.Context, userID uint, kinds ...string) ([]models.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uint) error
	VerifyPIN(ctx context.Context, userID, cardID uint, pin string) error

	// Pay settles an amount against the card. If the payee account
	// exists in this bank it is credited in the same transaction.
	Pay(ctx context.Context, userID, cardID uint, toAccount string, amount float64, remarks, pin string) (*models.Transaction, error)
}

type service struct {
	tokenizer Tokenizer
	repo      repositories.CardRepository
	accounts  repositories.AccountRepository
}

func NewService(repo repositories.CardRepository, accounts repositories.AccountRepository) Service {
	return &service{
		tokenizer: NewTokenizer(),
		repo:      repo,
		accounts:  accounts,
	}
}

func (s *service) LinkCard(ctx context.Context, userID uint, input models.LinkCardInput) (*models.Card, error) {
	if err := validateLinkInput(input); err != nil {
		return nil, err
	}

	tokenized, err := s.tokenizer.TokenizeCard(input)
	if err != nil {
		log.Println("Tokenization failed:", err)
		return nil, fmt.Errorf("card tokenization failed: %w", err)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	record := &models.Card{
		UserID:      userID,
		Token:       tokenized.Token,
		Kind:        input.Kind,
		Network:     tokenized.Network,
		LastFour:    tokenized.LastFour,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
		PINHash:     string(pinHash),
		Status:      "active",
	}
	if err := s.repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	return record, nil
}

// GetUserCards lists the user's active cards, optionally filtered to
// specific kinds (credit-only flows pass just "credit").
func (s *service) GetUserCards(ctx context.Context, userID uint, kinds ...string) ([]models.Card, error) {
	return s.repo.GetActiveByUserAndKind(userID, kinds...)
}

func (s *service) DeleteCard(ctx context.Context, userID, cardID uint) error {
	card, err := s.repo.GetByID(cardID)
	if err != nil {
		return err
	}
	if card.UserID != userID {
		return ErrCardNotBelongToUser
	}
	return s.repo.Delete(cardID)
}

func (s *service) VerifyPIN(ctx context.Context, userID, cardID uint, pin string) error {
	if !validation.IsValidPIN(pin) {
		return ErrInvalidPIN
	}

	card, err := s.getActiveOwnedCard(userID, cardID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(card.PINHash), []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}

func (s *service) Pay(ctx context.Context, userID, cardID uint, toAccount string, amount float64, remarks, pin string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	if err := s.VerifyPIN(ctx, userID, cardID, pin); err != nil {
		return nil, err
	}

	sender, err := s.accounts.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sender account: %w", err)
	}

	tx := &models.Transaction{
		Type:          models.TransactionTypeCardPayment,
		FromAccountID: sender.ID,
		Amount:        amount,
		Remarks:       remarks,
		Status:        models.TransactionStatusPending,
		Reference:     "CP-" + uuid.NewString(),
		CardID:        &cardID,
	}

	err = s.accounts.ExecuteInTransaction(func(repo repositories.AccountRepository) error {
		// Internal payees are credited immediately; external ones settle
		// through the card network and only the record is kept here.
		payee, err := repo.GetByAccountNumber(toAccount)
		if err == nil {
			payee.Balance += amount
			if err := repo.Update(payee); err != nil {
				return err
			}
			tx.ToAccountID = &payee.ID
		} else if err != repositories.ErrAccountNotFound {
			return err
		}

		tx.Status = models.TransactionStatusCompleted
		return repo.CreateTransaction(tx)
	})
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *service) getActiveOwnedCard(userID, cardID uint) (*models.Card, error) {
	card, err := s.repo.GetByID(cardID)
	if err != nil {
		if err == repositories.ErrCardNotFound {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if card.UserID != userID {
		return nil, ErrCardNotBelongToUser
	}
	if card.Status != "active" {
		return nil, ErrCardNotActive
	}
	return card, nil
}
