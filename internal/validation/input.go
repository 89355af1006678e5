// Package validation holds small input validation helpers shared by
// services and handlers. These run before any network or database call.
package validation

import (
	"strings"
	"unicode"
)

const (
	// MinAccountNumberLength is the threshold below which an account
	// number is not even worth a lookup.
	MinAccountNumberLength = 9

	// PINLength is the exact number of digits a card PIN must have.
	PINLength = 4

	accountNumberPrefix = "BK"
)

// IsValidPIN reports whether s is exactly four digits.
func IsValidPIN(s string) bool {
	if len(s) != PINLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsPlausibleRecipient reports whether the identifier looks like either
// an account number of sufficient length or a non-empty username/VPA.
// A plausible identifier is worth dispatching a verification lookup for;
// an implausible one is rejected locally.
func IsPlausibleRecipient(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	if LooksLikeAccountNumber(identifier) {
		return len(identifier) >= MinAccountNumberLength
	}
	return true
}

// LooksLikeAccountNumber reports whether the identifier has the account
// number shape (BK prefix followed by digits) rather than a username.
func LooksLikeAccountNumber(identifier string) bool {
	if !strings.HasPrefix(identifier, accountNumberPrefix) {
		return false
	}
	rest := identifier[len(accountNumberPrefix):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// HasSpecialChar reports whether s contains at least one symbol character.
func HasSpecialChar(s string) bool {
	specialChars := "!@#$%^&*()_+-=[]{}|;:,.<>?`~"
	for _, char := range s {
		if strings.ContainsRune(specialChars, char) {
			return true
		}
	}
	return false
}
