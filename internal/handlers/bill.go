package handlers

import (
	"errors"
	"strconv"

	"finch/internal/services/bill"
	"finch/internal/services/card"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type BillHandler struct {
	billService bill.Service
}

func NewBillHandler(billService bill.Service) *BillHandler {
	return &BillHandler{billService: billService}
}

// GetUserBills lists the caller's bills, due first
func (h *BillHandler) GetUserBills(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	bills, err := h.billService.GetUserBills(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to load bills")
	}
	return response.Success(c, "bills", bills)
}

// PayBill settles a bill from the caller's account balance
func (h *BillHandler) PayBill(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	billID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid bill id")
	}

	paid, err := h.billService.PayWithAccount(c.Context(), claims.UserID, uint(billID))
	if err != nil {
		return billErrorResponse(c, err)
	}
	return response.Success(c, "bill paid", paid)
}

type payBillCardRequest struct {
	BillID uint   `json:"bill_id"`
	CardID uint   `json:"card_id"`
	PIN    string `json:"pin"`
}

// PayBillWithCard settles a bill against a linked card after PIN
// verification
func (h *BillHandler) PayBillWithCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req payBillCardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	paid, err := h.billService.PayWithCard(c.Context(), claims.UserID, req.BillID, req.CardID, req.PIN)
	if err != nil {
		return billErrorResponse(c, err)
	}
	return response.Success(c, "bill paid", paid)
}

func billErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, bill.ErrBillNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, bill.ErrNotYourBill):
		return response.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, bill.ErrBillAlreadyPaid),
		errors.Is(err, bill.ErrInsufficient),
		errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, card.ErrCardNotActive),
		errors.Is(err, card.ErrCardNotBelongToUser),
		errors.Is(err, card.ErrInvalidPIN),
		errors.Is(err, card.ErrWrongPIN):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "bill payment failed")
	}
}
