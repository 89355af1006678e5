// Package upi issues UPI collect requests rendered as QR payloads.
// Generating a request is a terminal action: the flow ends at QR
// display and no ledger mutation happens here.
package upi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"finch/internal/config"
	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/utils"
)

var ErrRequestNotFound = errors.New("payment request not found")

type Service interface {
	CreatePaymentRequest(ctx context.Context, userID uint, amount *float64, remarks string) (*models.PaymentRequest, error)
	GetUserRequests(ctx context.Context, userID uint) ([]models.PaymentRequest, error)
	RevokeRequest(ctx context.Context, userID uint, code string) error
}

type service struct {
	requests repositories.PaymentRequestRepository
	users    repositories.UserRepository
}

func NewService(requests repositories.PaymentRequestRepository, users repositories.UserRepository) Service {
	return &service{
		requests: requests,
		users:    users,
	}
}

func (s *service) CreatePaymentRequest(ctx context.Context, userID uint, amount *float64, remarks string) (*models.PaymentRequest, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	code := utils.MustGenerateSecureCode()
	vpa := user.Username + "@" + config.GetEnv("UPI_HANDLE", "finch")

	var expiresAt *time.Time
	if amount != nil {
		// Amount-bearing requests expire; static receive codes do not.
		t := time.Now().Add(24 * time.Hour)
		expiresAt = &t
	}

	pr := &models.PaymentRequest{
		UserID:    userID,
		Code:      code,
		VPA:       vpa,
		Payload:   buildPayload(vpa, user.Name, amount, remarks, code),
		Amount:    amount,
		Remarks:   remarks,
		Status:    models.PaymentRequestActive,
		ExpiresAt: expiresAt,
		Metadata: models.NewJSON(map[string]interface{}{
			"user_id": userID,
		}),
	}
	if err := s.requests.Create(pr); err != nil {
		return nil, err
	}

	return pr, nil
}

// GetUserRequests lists the caller's requests, lazily expiring any that
// outlived their deadline.
func (s *service) GetUserRequests(ctx context.Context, userID uint) ([]models.PaymentRequest, error) {
	prs, err := s.requests.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range prs {
		if prs[i].Status == models.PaymentRequestActive &&
			prs[i].ExpiresAt != nil && prs[i].ExpiresAt.Before(now) {
			if err := s.requests.UpdateStatus(prs[i].ID, models.PaymentRequestExpired); err != nil {
				return nil, err
			}
			prs[i].Status = models.PaymentRequestExpired
		}
	}
	return prs, nil
}

// RevokeRequest withdraws one of the caller's collect requests. Codes
// belonging to other users answer not-found so they cannot be
// enumerated.
func (s *service) RevokeRequest(ctx context.Context, userID uint, code string) error {
	pr, err := s.requests.GetByCode(code)
	if err != nil {
		if err == repositories.ErrPaymentRequestNotFound {
			return ErrRequestNotFound
		}
		return err
	}
	if pr.UserID != userID {
		return ErrRequestNotFound
	}
	return s.requests.UpdateStatus(pr.ID, models.PaymentRequestRevoked)
}

// buildPayload renders the upi://pay deep link the QR encodes.
func buildPayload(vpa, payeeName string, amount *float64, remarks, code string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", payeeName)
	params.Set("cu", "INR")
	params.Set("tr", code)
	if amount != nil {
		params.Set("am", fmt.Sprintf("%.2f", *amount))
	}
	if remarks != "" {
		params.Set("tn", remarks)
	}
	return "upi://pay?" + params.Encode()
}
