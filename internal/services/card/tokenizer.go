package card

import (
	"fmt"
	"log"
	"os"
	"strings"

	"finch/internal/models"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// TokenizedCard represents a tokenized payment card
type TokenizedCard struct {
	Token    string
	Network  string
	LastFour string
	IssuedBy string
}

// Tokenizer exchanges a PAN for an issuer token
type Tokenizer interface {
	TokenizeCard(input models.LinkCardInput) (*TokenizedCard, error)
}

type defaultTokenizer struct {
	testCards map[string]struct {
		token   string
		network string
	}
}

// NewTokenizer builds the default tokenizer. Demo card numbers resolve
// locally; anything else goes through the Stripe token API.
func NewTokenizer() Tokenizer {
	return &defaultTokenizer{
		testCards: map[string]struct {
			token   string
			network string
		}{
			"4242424242424242": {"tok_visa", "Visa"},
			"4000056655665556": {"tok_visa_debit", "Visa Debit"},
			"5555555555554444": {"tok_mastercard", "Mastercard"},
			"2223003122003222": {"tok_mastercard_2", "Mastercard"},
			"378282246310005":  {"tok_amex", "American Express"},
			"6011111111111117": {"tok_discover", "Discover"},
		},
	}
}

func (t *defaultTokenizer) TokenizeCard(input models.LinkCardInput) (*TokenizedCard, error) {
	// Pre-issued test tokens pass straight through.
	if strings.HasPrefix(input.CardNumber, "tok_") {
		return &TokenizedCard{
			Token:    input.CardNumber,
			Network:  networkFromToken(input.CardNumber),
			LastFour: "4242",
			IssuedBy: "Test Issuer",
		}, nil
	}

	if testCard, ok := t.testCards[input.CardNumber]; ok {
		return &TokenizedCard{
			Token:    testCard.token,
			Network:  testCard.network,
			LastFour: input.CardNumber[len(input.CardNumber)-4:],
			IssuedBy: "Test Bank",
		}, nil
	}

	if !isValidCardNumber(input.CardNumber) {
		return nil, ErrInvalidCardNumber
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &input.CardNumber,
			ExpMonth: &input.ExpiryMonth,
			ExpYear:  &input.ExpiryYear,
		},
	}

	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("Stripe tokenization error: %v", err)
		return nil, fmt.Errorf("card tokenization failed: %w", err)
	}

	return &TokenizedCard{
		Token:    stripeToken.ID,
		Network:  string(stripeToken.Card.Brand),
		LastFour: input.CardNumber[len(input.CardNumber)-4:],
		IssuedBy: "Stripe",
	}, nil
}

func networkFromToken(tok string) string {
	switch tok {
	case "tok_visa", "tok_visa_debit":
		return "Visa"
	case "tok_mastercard", "tok_mastercard_2":
		return "Mastercard"
	case "tok_amex":
		return "American Express"
	case "tok_discover":
		return "Discover"
	default:
		return "Unknown"
	}
}
