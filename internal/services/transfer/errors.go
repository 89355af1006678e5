package transfer

import "errors"

var (
	// Workflow validation errors. These are raised before any gateway call.
	ErrRecipientRequired     = errors.New("recipient is required")
	ErrRecipientRejected     = errors.New("recipient verification was rejected")
	ErrVerificationPending   = errors.New("recipient verification is still in progress")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInsufficientBalance   = errors.New("amount exceeds available balance")
	ErrCardRequired          = errors.New("a card must be selected for card payments")
	ErrInvalidPIN            = errors.New("PIN must be exactly 4 digits")
	ErrSubmissionInFlight    = errors.New("a submission is already in progress")
	ErrUnsupportedInstrument = errors.New("unsupported payment instrument")

	// ErrSubmissionFailed is the generic fallback when the gateway gives
	// no message of its own.
	ErrSubmissionFailed = errors.New("submission failed")

	// Service errors.
	ErrSelfTransfer      = errors.New("cannot transfer to your own account")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrAccountFrozen     = errors.New("account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
