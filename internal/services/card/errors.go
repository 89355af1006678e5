package card

import "errors"

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrCardNotActive       = errors.New("card not active")
	ErrCardNotBelongToUser = errors.New("card does not belong to user")

	ErrCardNumberRequired = errors.New("card number is required")
	ErrInvalidCardKind    = errors.New("card kind must be credit or debit")
	ErrExpiryRequired     = errors.New("expiry date is required")
	ErrInvalidExpiryMonth = errors.New("invalid expiry month")
	ErrInvalidExpiryYear  = errors.New("invalid expiry year")
	ErrCardExpired        = errors.New("card has expired")
	ErrInvalidPIN         = errors.New("PIN must be exactly 4 digits")
	ErrWrongPIN           = errors.New("incorrect PIN")
	ErrInvalidCardNumber  = errors.New("invalid card number: failed Luhn check")
)
