package card

import (
	"strconv"
	"time"

	"finch/internal/models"
	"finch/internal/validation"
)

func validateLinkInput(input models.LinkCardInput) error {
	if input.CardNumber == "" {
		return ErrCardNumberRequired
	}
	if input.Kind != models.CardKindCredit && input.Kind != models.CardKindDebit {
		return ErrInvalidCardKind
	}
	if input.ExpiryMonth == "" || input.ExpiryYear == "" {
		return ErrExpiryRequired
	}

	month, err := strconv.Atoi(input.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidExpiryMonth
	}

	year, err := strconv.Atoi(input.ExpiryYear)
	if err != nil {
		return ErrInvalidExpiryYear
	}

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}

	if !validation.IsValidPIN(input.PIN) {
		return ErrInvalidPIN
	}

	return nil
}

// Luhn Algorithm: Used to validate card numbers
func isValidCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	var sum int
	shouldDouble := false

	// Iterate over the digits of the card number from right to left
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	// Card is valid if the sum is a multiple of 10
	return sum%10 == 0
}
