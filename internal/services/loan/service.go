package loan

import (
	"context"
	"fmt"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/google/uuid"
)

// ApplyInput is a loan application as submitted by the client. Any rate
// the client sends along is advisory only; the server recomputes the
// quote from its own policy before persisting.
type ApplyInput struct {
	LoanType     string  `json:"loanType"`
	LoanAmount   float64 `json:"loanAmount"`
	TenureMonths int     `json:"tenureMonths"`
	InterestRate float64 `json:"interestRate"`
}

type Service interface {
	Quote(ctx context.Context, loanType string, principal float64, tenureMonths int) (Quote, error)
	Apply(ctx context.Context, userID uint, input ApplyInput) (*models.Loan, error)
	MyLoans(ctx context.Context, userID uint) ([]models.Loan, error)

	// Admin operations
	ListAll(ctx context.Context, offset, limit int) ([]models.Loan, int64, error)
	Approve(ctx context.Context, loanID uint) (*models.Loan, error)
	Reject(ctx context.Context, loanID uint, reason string) (*models.Loan, error)
}

type service struct {
	policy   Policy
	loans    repositories.LoanRepository
	accounts repositories.AccountRepository
}

func NewService(policy Policy, loans repositories.LoanRepository, accounts repositories.AccountRepository) Service {
	return &service{
		policy:   policy,
		loans:    loans,
		accounts: accounts,
	}
}

func (s *service) Quote(ctx context.Context, loanType string, principal float64, tenureMonths int) (Quote, error) {
	return s.policy.ComputeQuote(loanType, principal, tenureMonths)
}

func (s *service) Apply(ctx context.Context, userID uint, input ApplyInput) (*models.Loan, error) {
	quote, err := s.policy.ComputeQuote(input.LoanType, input.LoanAmount, input.TenureMonths)
	if err != nil {
		return nil, err
	}

	loan := &models.Loan{
		UserID:             userID,
		LoanType:           quote.LoanType,
		Principal:          quote.Principal,
		TenureMonths:       quote.TenureMonths,
		InterestRate:       quote.EffectiveRate,
		MonthlyInstallment: quote.MonthlyInstallment,
		TotalInterest:      quote.TotalInterest,
		TotalPayable:       quote.TotalPayable,
		Status:             models.LoanStatusPending,
	}
	if err := s.loans.Create(loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *service) MyLoans(ctx context.Context, userID uint) ([]models.Loan, error) {
	return s.loans.GetByUserID(userID)
}

func (s *service) ListAll(ctx context.Context, offset, limit int) ([]models.Loan, int64, error) {
	return s.loans.List(offset, limit)
}

// Approve marks a pending loan approved and disburses the principal to
// the borrower's account. The pending-to-approved flip is a single
// conditional update, so of two racing approvals only one reaches the
// disbursal.
func (s *service) Approve(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		if err == repositories.ErrLoanNotFound {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, ErrLoanNotPending
	}

	if err := s.loans.ClaimPending(loanID, models.LoanStatusApproved, ""); err != nil {
		if err == repositories.ErrLoanNotPending {
			return nil, ErrLoanNotPending
		}
		return nil, err
	}

	err = s.accounts.ExecuteInTransaction(func(repo repositories.AccountRepository) error {
		account, err := repo.GetByUserID(loan.UserID)
		if err != nil {
			return err
		}
		account.Balance += loan.Principal
		if err := repo.Update(account); err != nil {
			return err
		}
		return repo.CreateTransaction(&models.Transaction{
			Type:          models.TransactionTypeLoanDisburse,
			FromAccountID: account.ID,
			ToAccountID:   &account.ID,
			Amount:        loan.Principal,
			Remarks:       fmt.Sprintf("%s loan disbursal", loan.LoanType),
			Status:        models.TransactionStatusCompleted,
			Reference:     "LN-" + uuid.NewString(),
		})
	})
	if err != nil {
		// Reopen the claim so the disbursal can be retried.
		if revertErr := s.loans.UpdateStatus(loanID, models.LoanStatusPending, ""); revertErr != nil {
			return nil, fmt.Errorf("disbursal failed (%v), status revert failed: %w", err, revertErr)
		}
		return nil, err
	}

	loan.Status = models.LoanStatusApproved
	return loan, nil
}

func (s *service) Reject(ctx context.Context, loanID uint, reason string) (*models.Loan, error) {
	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		if err == repositories.ErrLoanNotFound {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, ErrLoanNotPending
	}

	if err := s.loans.ClaimPending(loanID, models.LoanStatusRejected, reason); err != nil {
		if err == repositories.ErrLoanNotPending {
			return nil, ErrLoanNotPending
		}
		return nil, err
	}
	loan.Status = models.LoanStatusRejected
	loan.DecisionReason = reason
	return loan, nil
}
