package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPIN(t *testing.T) {
	tests := []struct {
		name string
		pin  string
		want bool
	}{
		{"four digits", "1234", true},
		{"leading zero", "0042", true},
		{"too short", "12", false},
		{"too long", "12345", false},
		{"letters", "12ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPIN(tt.pin))
		})
	}
}

func TestIsPlausibleRecipient(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       bool
	}{
		{"full account number", "BK1234567", true},
		{"short account number", "BK123", false},
		{"username", "ravi_kumar", true},
		{"vpa", "ravi@finch", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlausibleRecipient(tt.identifier))
		})
	}
}

func TestLooksLikeAccountNumber(t *testing.T) {
	assert.True(t, LooksLikeAccountNumber("BK1234567"))
	assert.False(t, LooksLikeAccountNumber("BK"))
	assert.False(t, LooksLikeAccountNumber("BKabc"))
	assert.False(t, LooksLikeAccountNumber("ravi_kumar"))
}
