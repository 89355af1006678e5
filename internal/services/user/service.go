package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finch/internal/config"
	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/utils"
	"finch/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrWeakPassword     = errors.New("password must be at least 8 characters and contain special characters")
)

// RegisterInput carries the fields needed to open a demo account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
}

type service struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
}

func NewService(userRepo repositories.UserRepository, accountRepo repositories.AccountRepository) Service {
	return &service{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// Register creates a user together with their bank account. New accounts
// are seeded with a configurable demo opening balance.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < 8 || !validation.HasSpecialChar(input.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, repositories.ErrEmailTaken
	}
	if _, err := s.userRepo.GetByUsername(input.Username); err == nil {
		return nil, repositories.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	number, err := utils.GenerateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := &models.Account{
		UserID:        user.ID,
		AccountNumber: number,
		Currency:      config.GetEnv("ACCOUNT_CURRENCY", "INR"),
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}

	// Seed the demo opening balance after BeforeCreate zeroes it.
	opening := config.GetFloatEnv("DEMO_OPENING_BALANCE", 10000)
	if opening > 0 {
		account.Balance = opening
		if err := s.accountRepo.Update(account); err != nil {
			return nil, err
		}
		if err := s.accountRepo.CreateTransaction(&models.Transaction{
			Type:          models.TransactionTypeDeposit,
			FromAccountID: account.ID,
			ToAccountID:   &account.ID,
			Amount:        opening,
			Remarks:       "demo opening balance",
			Status:        models.TransactionStatusCompleted,
			Reference:     "DP-" + uuid.NewString(),
		}); err != nil {
			return nil, err
		}
	}

	user.AccountID = &account.ID
	user.Account = account
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}
