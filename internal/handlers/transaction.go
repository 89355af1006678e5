package handlers

import (
	"errors"

	"finch/internal/repositories"
	"finch/internal/services/account"
	"finch/internal/utils/pagination"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	accountService account.Service
	transactions   repositories.TransactionRepository
}

func NewTransactionHandler(accountService account.Service, transactions repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{accountService: accountService, transactions: transactions}
}

// GetUserTransactions lists the caller's transaction history, newest first
func (h *TransactionHandler) GetUserTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	acct, err := h.accountService.GetSnapshot(c.Context(), claims.UserID)
	if err != nil {
		return response.NotFound(c, "account not found")
	}

	p := pagination.ParseFromRequest(c)
	txs, total, err := h.transactions.GetByAccountID(acct.ID, p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "failed to load transactions")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, txs))
}

// GetTransactionByReference looks up a single transaction receipt.
// Transactions the caller's account is not party to answer not-found.
func (h *TransactionHandler) GetTransactionByReference(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "reference is required")
	}

	acct, err := h.accountService.GetSnapshot(c.Context(), claims.UserID)
	if err != nil {
		return response.NotFound(c, "account not found")
	}

	tx, err := h.transactions.GetByReference(reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return response.NotFound(c, "transaction not found")
		}
		return response.ServerError(c, "failed to load transaction")
	}

	if tx.FromAccountID != acct.ID && (tx.ToAccountID == nil || *tx.ToAccountID != acct.ID) {
		return response.NotFound(c, "transaction not found")
	}
	return response.Success(c, "transaction", tx)
}
