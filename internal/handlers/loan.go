package handlers

import (
	"errors"

	"finch/internal/services/loan"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type LoanHandler struct {
	loanService loan.Service
}

func NewLoanHandler(loanService loan.Service) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

type quoteRequest struct {
	LoanType     string  `json:"loanType"`
	LoanAmount   float64 `json:"loanAmount"`
	TenureMonths int     `json:"tenureMonths"`
}

// GetQuote prices a loan without persisting anything
func (h *LoanHandler) GetQuote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	quote, err := h.loanService.Quote(c.Context(), req.LoanType, req.LoanAmount, req.TenureMonths)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "quote", quote)
}

// ApplyForLoan submits a loan application for the caller
func (h *LoanHandler) ApplyForLoan(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input loan.ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	applied, err := h.loanService.Apply(c.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, loan.ErrUnknownLoanType) ||
			errors.Is(err, loan.ErrPrincipalTooSmall) ||
			errors.Is(err, loan.ErrTenureOutOfRange) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "failed to submit application")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "application submitted",
		"data":    applied,
	})
}

// GetMyLoans lists the caller's applications, newest first
func (h *LoanHandler) GetMyLoans(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	loans, err := h.loanService.MyLoans(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to load loans")
	}
	return response.Success(c, "loans", loans)
}
