package handlers

import (
	"errors"

	"finch/internal/services/account"
	"finch/internal/services/transfer"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetMyAccount returns the caller's account snapshot
func (h *AccountHandler) GetMyAccount(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	acct, err := h.accountService.GetSnapshot(c.Context(), claims.UserID)
	if err != nil {
		return response.NotFound(c, "account not found")
	}

	return response.Success(c, "account", fiber.Map{
		"account_number": acct.AccountNumber,
		"balance":        acct.Balance,
		"currency":       acct.Currency,
		"status":         acct.Status,
	})
}

// VerifyRecipient resolves an account number or username to a payee.
// Unknown identifiers answer 200 with valid=false rather than an error,
// so callers can surface the rejection inline.
func (h *AccountHandler) VerifyRecipient(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	if identifier == "" {
		return response.BadRequest(c, "recipient identifier is required")
	}

	beneficiary, err := h.accountService.VerifyRecipient(c.Context(), identifier)
	if err != nil {
		if errors.Is(err, transfer.ErrRecipientNotFound) {
			return response.Success(c, "recipient not found", fiber.Map{"valid": false})
		}
		return response.ServerError(c, "recipient lookup failed")
	}

	return response.Success(c, "recipient verified", fiber.Map{
		"valid":          true,
		"full_name":      beneficiary.FullName,
		"username":       beneficiary.Username,
		"account_number": beneficiary.AccountNumber,
	})
}
