package loan

import (
	"context"
	"errors"
	"testing"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// staleLoanRepo always reports the loan as pending on reads, the way a
// second admin's read can land before the first admin's decision is
// committed. Only the conditional claim knows the truth: it succeeds
// exactly once.
type staleLoanRepo struct {
	loan     models.Loan
	claimed  bool
	reverted bool
}

func (r *staleLoanRepo) Create(loan *models.Loan) error { return nil }

func (r *staleLoanRepo) GetByID(id uint) (*models.Loan, error) {
	stale := r.loan
	stale.Status = models.LoanStatusPending
	return &stale, nil
}

func (r *staleLoanRepo) GetByUserID(userID uint) ([]models.Loan, error) { return nil, nil }

func (r *staleLoanRepo) UpdateStatus(loanID uint, status, reason string) error {
	if status == models.LoanStatusPending {
		r.reverted = true
		r.claimed = false
	}
	r.loan.Status = status
	r.loan.DecisionReason = reason
	return nil
}

func (r *staleLoanRepo) ClaimPending(loanID uint, status, reason string) error {
	if r.claimed {
		return repositories.ErrLoanNotPending
	}
	r.claimed = true
	r.loan.Status = status
	r.loan.DecisionReason = reason
	return nil
}

func (r *staleLoanRepo) List(offset, limit int) ([]models.Loan, int64, error) { return nil, 0, nil }

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

func pendingLoan() models.Loan {
	return models.Loan{
		ID:        7,
		UserID:    1,
		LoanType:  models.LoanTypePersonal,
		Principal: 100000,
		Status:    models.LoanStatusPending,
	}
}

func TestApprove(t *testing.T) {
	borrower := func() *models.Account {
		return &models.Account{ID: 1, UserID: 1, AccountNumber: "BK1234567", Balance: 0, Status: models.AccountStatusActive}
	}

	t.Run("disburses principal once", func(t *testing.T) {
		loans := &staleLoanRepo{loan: pendingLoan()}
		accounts := new(MockAccountRepo)
		accounts.On("ExecuteInTransaction", mock.Anything).Return(nil)
		accounts.On("GetByUserID", uint(1)).Return(borrower(), nil)
		accounts.On("Update", mock.MatchedBy(func(a *models.Account) bool {
			return a.Balance == 100000
		})).Return(nil)
		accounts.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeLoanDisburse && tx.Amount == 100000
		})).Return(nil)

		svc := NewService(DefaultPolicy(), loans, accounts)
		loan, err := svc.Approve(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, models.LoanStatusApproved, loan.Status)
		accounts.AssertNumberOfCalls(t, "CreateTransaction", 1)
	})

	t.Run("second approval of the same loan loses the claim", func(t *testing.T) {
		// Both approvals read the loan as pending; the conditional
		// claim lets only one of them through to the disbursal.
		loans := &staleLoanRepo{loan: pendingLoan()}
		accounts := new(MockAccountRepo)
		accounts.On("ExecuteInTransaction", mock.Anything).Return(nil)
		accounts.On("GetByUserID", uint(1)).Return(borrower(), nil)
		accounts.On("Update", mock.Anything).Return(nil)
		accounts.On("CreateTransaction", mock.Anything).Return(nil)

		svc := NewService(DefaultPolicy(), loans, accounts)
		_, err := svc.Approve(context.Background(), 7)
		require.NoError(t, err)

		_, err = svc.Approve(context.Background(), 7)
		assert.ErrorIs(t, err, ErrLoanNotPending)
		accounts.AssertNumberOfCalls(t, "Update", 1)
		accounts.AssertNumberOfCalls(t, "CreateTransaction", 1)
	})

	t.Run("failed disbursal reopens the loan", func(t *testing.T) {
		loans := &staleLoanRepo{loan: pendingLoan()}
		accounts := new(MockAccountRepo)
		accounts.On("ExecuteInTransaction", mock.Anything).Return(errors.New("db down"))

		svc := NewService(DefaultPolicy(), loans, accounts)
		_, err := svc.Approve(context.Background(), 7)
		require.Error(t, err)
		assert.True(t, loans.reverted, "loan should be reopened for retry")
		assert.Equal(t, models.LoanStatusPending, loans.loan.Status)
	})

	t.Run("unknown loan", func(t *testing.T) {
		loans := new(MockLoanRepo)
		loans.On("GetByID", uint(99)).Return(nil, repositories.ErrLoanNotFound)

		svc := NewService(DefaultPolicy(), loans, new(MockAccountRepo))
		_, err := svc.Approve(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})
}

func TestReject(t *testing.T) {
	t.Run("records the decision reason", func(t *testing.T) {
		loans := &staleLoanRepo{loan: pendingLoan()}

		svc := NewService(DefaultPolicy(), loans, new(MockAccountRepo))
		loan, err := svc.Reject(context.Background(), 7, "income not verified")
		require.NoError(t, err)
		assert.Equal(t, models.LoanStatusRejected, loan.Status)
		assert.Equal(t, "income not verified", loan.DecisionReason)
	})

	t.Run("already decided", func(t *testing.T) {
		loans := &staleLoanRepo{loan: pendingLoan(), claimed: true}

		svc := NewService(DefaultPolicy(), loans, new(MockAccountRepo))
		_, err := svc.Reject(context.Background(), 7, "duplicate")
		assert.ErrorIs(t, err, ErrLoanNotPending)
	})
}

type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(loan *models.Loan) error { return m.Called(loan).Error(0) }

func (m *MockLoanRepo) GetByID(id uint) (*models.Loan, error) {
	args := m.Called(id)
	if l := args.Get(0); l != nil {
		return l.(*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepo) GetByUserID(userID uint) ([]models.Loan, error) {
	args := m.Called(userID)
	if l := args.Get(0); l != nil {
		return l.([]models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRepo) UpdateStatus(loanID uint, status, reason string) error {
	return m.Called(loanID, status, reason).Error(0)
}

func (m *MockLoanRepo) ClaimPending(loanID uint, status, reason string) error {
	return m.Called(loanID, status, reason).Error(0)
}

func (m *MockLoanRepo) List(offset, limit int) ([]models.Loan, int64, error) {
	args := m.Called(offset, limit)
	if l := args.Get(0); l != nil {
		return l.([]models.Loan), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}
