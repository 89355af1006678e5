package handlers

import (
	"errors"

	"finch/internal/services/account"
	"finch/internal/services/card"
	"finch/internal/services/transfer"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	accountService account.Service
	gateway        transfer.Gateway
}

func NewTransferHandler(accountService account.Service, gateway transfer.Gateway) *TransferHandler {
	return &TransferHandler{accountService: accountService, gateway: gateway}
}

type transferRequest struct {
	ToAccountNumber string  `json:"to_account_number"`
	Amount          float64 `json:"amount"`
	Remarks         string  `json:"remarks"`
	CardID          uint    `json:"card_id"`
	PIN             string  `json:"pin"`
}

// SendTransfer drives a full transfer attempt: recipient verification,
// constraint checks, then submission against the ledger.
func (h *TransferHandler) SendTransfer(c *fiber.Ctx) error {
	return h.send(c, transfer.InstrumentAccount)
}

// SendCardPayment is the card-funded variant. A linked card and its PIN
// are required before the gateway is consulted.
func (h *TransferHandler) SendCardPayment(c *fiber.Ctx) error {
	return h.send(c, transfer.InstrumentCard)
}

func (h *TransferHandler) send(c *fiber.Ctx, instrument transfer.Instrument) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	acct, err := h.accountService.GetSnapshot(c.Context(), claims.UserID)
	if err != nil {
		return response.NotFound(c, "account not found")
	}

	w := transfer.NewWorkflow(transfer.Snapshot{
		AccountNumber:    acct.AccountNumber,
		AvailableBalance: acct.Balance,
	}, h.accountService, h.gateway)

	w.SetRecipient(req.ToAccountNumber)
	if state := w.Verify(c.Context()); state.Status() == transfer.StatusRejected {
		return response.BadRequest(c, state.Reason())
	}

	w.SetAmount(req.Amount)
	w.SetInstrument(instrument)
	w.SetRemarks(req.Remarks)
	if instrument == transfer.InstrumentCard {
		w.SetCard(req.CardID)
		w.SetPIN(req.PIN)
	}

	receipt, err := w.Submit(c.Context(), claims.UserID)
	if err != nil {
		return response.BadRequest(c, transferErrorMessage(err))
	}

	return response.Success(c, "payment successful", receipt)
}

// transferErrorMessage keeps gateway failures from leaking internals while
// preserving the validation sentinels verbatim.
func transferErrorMessage(err error) string {
	switch {
	case errors.Is(err, transfer.ErrRecipientRequired),
		errors.Is(err, transfer.ErrRecipientRejected),
		errors.Is(err, transfer.ErrVerificationPending),
		errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrInsufficientBalance),
		errors.Is(err, transfer.ErrCardRequired),
		errors.Is(err, transfer.ErrInvalidPIN),
		errors.Is(err, transfer.ErrSubmissionInFlight),
		errors.Is(err, transfer.ErrSelfTransfer),
		errors.Is(err, transfer.ErrRecipientNotFound),
		errors.Is(err, transfer.ErrAccountFrozen),
		errors.Is(err, transfer.ErrInsufficientFunds),
		errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, card.ErrCardNotActive),
		errors.Is(err, card.ErrCardNotBelongToUser),
		errors.Is(err, card.ErrWrongPIN):
		return err.Error()
	default:
		return transfer.ErrSubmissionFailed.Error()
	}
}
