package transfer

import (
	"context"
	"testing"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(account *models.Account) error {
	return m.Called(account).Error(0)
}

func (m *MockAccountRepo) GetByID(id uint) (*models.Account, error) {
	args := m.Called(id)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) GetByUserID(userID uint) (*models.Account, error) {
	args := m.Called(userID)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) GetByAccountNumber(number string) (*models.Account, error) {
	args := m.Called(number)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) Update(account *models.Account) error {
	return m.Called(account).Error(0)
}

func (m *MockAccountRepo) UpdateStatus(accountID uint, status, reason string) error {
	return m.Called(accountID, status, reason).Error(0)
}

func (m *MockAccountRepo) CreateTransaction(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockAccountRepo) ExecuteInTransaction(fn func(repositories.AccountRepository) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func TestTransferService(t *testing.T) {
	sender := func() *models.Account {
		return &models.Account{ID: 1, UserID: 1, AccountNumber: "BK1234567", Balance: 5000, Status: models.AccountStatusActive}
	}
	recipient := func() *models.Account {
		return &models.Account{ID: 2, UserID: 2, AccountNumber: "BK7654321", Balance: 100, Status: models.AccountStatusActive}
	}

	t.Run("successful transfer debits and credits atomically", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUserID", uint(1)).Return(sender(), nil)
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByAccountNumber", "BK7654321").Return(recipient(), nil)
		repo.On("Update", mock.MatchedBy(func(a *models.Account) bool {
			return a.AccountNumber == "BK1234567" && a.Balance == 4000
		})).Return(nil)
		repo.On("Update", mock.MatchedBy(func(a *models.Account) bool {
			return a.AccountNumber == "BK7654321" && a.Balance == 1100
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeTransfer &&
				tx.Status == models.TransactionStatusCompleted &&
				tx.Amount == 1000
		})).Return(nil)

		svc := NewService(repo)
		tx, balanceAfter, err := svc.Transfer(context.Background(), 1, "BK7654321", 1000, "rent")

		require.NoError(t, err)
		assert.Equal(t, 4000.0, balanceAfter)
		assert.NotEmpty(t, tx.Reference)
		repo.AssertExpectations(t)
	})

	t.Run("self transfer is refused", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUserID", uint(1)).Return(sender(), nil)

		svc := NewService(repo)
		_, _, err := svc.Transfer(context.Background(), 1, "BK1234567", 1000, "")

		assert.ErrorIs(t, err, ErrSelfTransfer)
		repo.AssertNotCalled(t, "ExecuteInTransaction", mock.Anything)
	})

	t.Run("insufficient funds re-checked server side", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUserID", uint(1)).Return(sender(), nil)
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)

		svc := NewService(repo)
		_, _, err := svc.Transfer(context.Background(), 1, "BK7654321", 9000, "")

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("unknown recipient account", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUserID", uint(1)).Return(sender(), nil)
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByAccountNumber", "BK0000001").Return(nil, repositories.ErrAccountNotFound)

		svc := NewService(repo)
		_, _, err := svc.Transfer(context.Background(), 1, "BK0000001", 1000, "")

		assert.ErrorIs(t, err, ErrRecipientNotFound)
	})

	t.Run("frozen sender account", func(t *testing.T) {
		frozen := sender()
		frozen.Status = models.AccountStatusFrozen

		repo := new(MockAccountRepo)
		repo.On("GetByUserID", uint(1)).Return(frozen, nil)

		svc := NewService(repo)
		_, _, err := svc.Transfer(context.Background(), 1, "BK7654321", 1000, "")

		assert.ErrorIs(t, err, ErrAccountFrozen)
	})

	t.Run("zero amount never touches the repository", func(t *testing.T) {
		repo := new(MockAccountRepo)

		svc := NewService(repo)
		_, _, err := svc.Transfer(context.Background(), 1, "BK7654321", 0, "")

		assert.ErrorIs(t, err, ErrInvalidAmount)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything)
	})
}
