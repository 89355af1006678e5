package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrBillAlreadyPaid = errors.New("bill is already paid")
	ErrNotYourBill     = errors.New("bill does not belong to user")
	ErrInsufficient    = errors.New("insufficient funds")
)

// PINVerifier checks a card PIN before a card-channel bill payment.
type PINVerifier interface {
	VerifyPIN(ctx context.Context, userID, cardID uint, pin string) error
}

type Service interface {
	GetUserBills(ctx context.Context, userID uint) ([]models.Bill, error)
	PayWithAccount(ctx context.Context, userID, billID uint) (*models.Bill, error)
	PayWithCard(ctx context.Context, userID, billID, cardID uint, pin string) (*models.Bill, error)
}

type service struct {
	bills    repositories.BillRepository
	accounts repositories.AccountRepository
	cards    PINVerifier
}

func NewService(bills repositories.BillRepository, accounts repositories.AccountRepository, cards PINVerifier) Service {
	return &service{
		bills:    bills,
		accounts: accounts,
		cards:    cards,
	}
}

// GetUserBills lists the caller's bills, flagging any that sailed past
// their due date.
func (s *service) GetUserBills(ctx context.Context, userID uint) ([]models.Bill, error) {
	bills, err := s.bills.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range bills {
		if bills[i].Status == models.BillStatusDue && bills[i].DueDate.Before(now) {
			bills[i].Status = models.BillStatusOverdue
			if err := s.bills.Update(&bills[i]); err != nil {
				return nil, err
			}
		}
	}
	return bills, nil
}

// PayWithAccount debits the user's account for the bill amount. The
// bill is claimed first in one conditional update, so two concurrent
// payments can never both debit; a failed debit reopens the claim.
func (s *service) PayWithAccount(ctx context.Context, userID, billID uint) (*models.Bill, error) {
	bill, err := s.getPayableBill(userID, billID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.claimBill(bill.ID, models.BillPaidViaAccount, now); err != nil {
		return nil, err
	}

	err = s.accounts.ExecuteInTransaction(func(repo repositories.AccountRepository) error {
		account, err := repo.GetByUserID(userID)
		if err != nil {
			return err
		}
		if account.Balance < bill.Amount {
			return ErrInsufficient
		}
		account.Balance -= bill.Amount
		if err := repo.Update(account); err != nil {
			return err
		}
		return repo.CreateTransaction(&models.Transaction{
			Type:          models.TransactionTypeBillPayment,
			FromAccountID: account.ID,
			Amount:        bill.Amount,
			Remarks:       fmt.Sprintf("%s bill: %s", bill.Category, bill.Biller),
			Status:        models.TransactionStatusCompleted,
			Reference:     "BP-" + uuid.NewString(),
			BillID:        &bill.ID,
		})
	})
	if err != nil {
		return nil, s.reopenBill(bill, err)
	}

	return paidBill(bill, models.BillPaidViaAccount, now), nil
}

// PayWithCard settles the bill against a linked card after PIN
// confirmation. The account balance is untouched. As on the account
// path the bill is claimed before the charge is recorded, so a failed
// settlement can never leave a charged card behind a still-due bill.
func (s *service) PayWithCard(ctx context.Context, userID, billID, cardID uint, pin string) (*models.Bill, error) {
	bill, err := s.getPayableBill(userID, billID)
	if err != nil {
		return nil, err
	}

	if err := s.cards.VerifyPIN(ctx, userID, cardID, pin); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.claimBill(bill.ID, models.BillPaidViaCard, now); err != nil {
		return nil, err
	}

	err = s.accounts.CreateTransaction(&models.Transaction{
		Type:          models.TransactionTypeBillPayment,
		FromAccountID: account.ID,
		Amount:        bill.Amount,
		Remarks:       fmt.Sprintf("%s bill: %s", bill.Category, bill.Biller),
		Status:        models.TransactionStatusCompleted,
		Reference:     "BP-" + uuid.NewString(),
		CardID:        &cardID,
		BillID:        &bill.ID,
	})
	if err != nil {
		return nil, s.reopenBill(bill, err)
	}

	return paidBill(bill, models.BillPaidViaCard, now), nil
}

func (s *service) getPayableBill(userID, billID uint) (*models.Bill, error) {
	bill, err := s.bills.GetByID(billID)
	if err != nil {
		if err == repositories.ErrBillNotFound {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if bill.UserID != userID {
		return nil, ErrNotYourBill
	}
	if bill.Status == models.BillStatusPaid {
		return nil, ErrBillAlreadyPaid
	}
	return bill, nil
}

func (s *service) claimBill(billID uint, via string, paidAt time.Time) error {
	if err := s.bills.MarkPaid(billID, via, paidAt); err != nil {
		if err == repositories.ErrBillAlreadyPaid {
			return ErrBillAlreadyPaid
		}
		return err
	}
	return nil
}

// reopenBill reverts a claimed bill to its pre-claim state after a
// failed settlement. The bill struct still holds the unpaid fields.
func (s *service) reopenBill(bill *models.Bill, cause error) error {
	if reopenErr := s.bills.Update(bill); reopenErr != nil {
		return fmt.Errorf("payment failed (%v), bill reopen failed: %w", cause, reopenErr)
	}
	return cause
}

func paidBill(bill *models.Bill, via string, paidAt time.Time) *models.Bill {
	bill.Status = models.BillStatusPaid
	bill.PaidVia = via
	bill.PaidAt = &paidAt
	return bill
}
