package transfer

import (
	"context"

	"finch/internal/models"
)

// Directory resolves a recipient identifier (account number or username)
// to a beneficiary. Implementations must return ErrRecipientNotFound for
// unknown identifiers; any other error is treated as a failed lookup.
type Directory interface {
	VerifyRecipient(ctx context.Context, identifier string) (*Beneficiary, error)
}

// SubmitRequest is the confirmed payload handed to the gateway.
type SubmitRequest struct {
	ToAccountNumber string
	Amount          float64
	Remarks         string
	CardID          uint
	PIN             string
}

// Receipt is what the gateway reports back on success. The balance it
// carries is authoritative: callers display it as-is and never recompute
// a post-transfer balance locally.
type Receipt struct {
	Reference        string   `json:"reference"`
	ToAccountNumber  string   `json:"to_account_number"`
	Amount           float64  `json:"amount"`
	FromBalanceAfter *float64 `json:"from_balance_after,omitempty"`
	QRPayload        string   `json:"qr_payload,omitempty"`
}

// Gateway executes a confirmed submission through one of the supported
// instruments.
type Gateway interface {
	SubmitTransfer(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error)
	SubmitCardPayment(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error)
	CreatePaymentRequest(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error)
}

// Service executes bank transfers against the ledger.
type Service interface {
	Transfer(ctx context.Context, senderUserID uint, toAccountNumber string, amount float64, remarks string) (*models.Transaction, float64, error)
}

// CardCharger settles a payment against a linked card.
type CardCharger interface {
	Pay(ctx context.Context, userID, cardID uint, toAccount string, amount float64, remarks, pin string) (*models.Transaction, error)
}

// RequestCreator issues UPI collect requests.
type RequestCreator interface {
	CreatePaymentRequest(ctx context.Context, userID uint, amount *float64, remarks string) (*models.PaymentRequest, error)
}
