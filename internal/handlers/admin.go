package handlers

import (
	"errors"
	"strconv"

	"finch/internal/repositories"
	"finch/internal/services/account"
	"finch/internal/services/loan"
	"finch/internal/utils/pagination"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userRepo       repositories.UserRepository
	accountService account.Service
	loanService    loan.Service
}

func NewAdminHandler(userRepo repositories.UserRepository, accountService account.Service, loanService loan.Service) *AdminHandler {
	return &AdminHandler{
		userRepo:       userRepo,
		accountService: accountService,
		loanService:    loanService,
	}
}

// GetUsersPaginated lists all users (admin only)
func (h *AdminHandler) GetUsersPaginated(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userRepo.List(p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "failed to fetch users")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, users))
}

type freezeRequest struct {
	Reason string `json:"reason"`
}

// FreezeAccount blocks all outgoing activity on an account
func (h *AdminHandler) FreezeAccount(c *fiber.Ctx) error {
	accountID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	var req freezeRequest
	_ = c.BodyParser(&req)

	if err := h.accountService.Freeze(c.Context(), uint(accountID), req.Reason); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to freeze account")
	}
	return response.Success(c, "account frozen", nil)
}

// UnfreezeAccount restores a frozen account to active
func (h *AdminHandler) UnfreezeAccount(c *fiber.Ctx) error {
	accountID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	if err := h.accountService.Unfreeze(c.Context(), uint(accountID)); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to unfreeze account")
	}
	return response.Success(c, "account unfrozen", nil)
}

// GetLoansPaginated lists all loan applications (admin only)
func (h *AdminHandler) GetLoansPaginated(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	loans, total, err := h.loanService.ListAll(c.Context(), p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "failed to fetch loans")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, loans))
}

// ApproveLoan approves a pending application and disburses the principal
func (h *AdminHandler) ApproveLoan(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	approved, err := h.loanService.Approve(c.Context(), uint(loanID))
	if err != nil {
		return loanDecisionResponse(c, err)
	}
	return response.Success(c, "loan approved", approved)
}

type rejectLoanRequest struct {
	Reason string `json:"reason"`
}

// RejectLoan rejects a pending application with a decision reason
func (h *AdminHandler) RejectLoan(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	var req rejectLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rejected, err := h.loanService.Reject(c.Context(), uint(loanID), req.Reason)
	if err != nil {
		return loanDecisionResponse(c, err)
	}
	return response.Success(c, "loan rejected", rejected)
}

func loanDecisionResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, loan.ErrLoanNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, loan.ErrLoanNotPending):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "loan decision failed")
	}
}
