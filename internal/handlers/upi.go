package handlers

import (
	"errors"

	"finch/internal/services/upi"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UPIHandler struct {
	upiService upi.Service
}

func NewUPIHandler(upiService upi.Service) *UPIHandler {
	return &UPIHandler{upiService: upiService}
}

type createRequestBody struct {
	// Amount is optional: nil produces a static collect code that
	// never expires.
	Amount  *float64 `json:"amount"`
	Remarks string   `json:"remarks"`
}

// CreatePaymentRequest issues a UPI collect request with a QR payload
func (h *UPIHandler) CreatePaymentRequest(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if body.Amount != nil && *body.Amount <= 0 {
		return response.BadRequest(c, "amount must be greater than zero")
	}

	pr, err := h.upiService.CreatePaymentRequest(c.Context(), claims.UserID, body.Amount, body.Remarks)
	if err != nil {
		return response.ServerError(c, "failed to create payment request")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "payment request created",
		"data":    pr,
	})
}

// GetUserRequests lists the caller's payment requests
func (h *UPIHandler) GetUserRequests(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	requests, err := h.upiService.GetUserRequests(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to load payment requests")
	}
	return response.Success(c, "payment requests", requests)
}

// RevokeRequest cancels one of the caller's collect codes
func (h *UPIHandler) RevokeRequest(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "code is required")
	}

	if err := h.upiService.RevokeRequest(c.Context(), claims.UserID, code); err != nil {
		if errors.Is(err, upi.ErrRequestNotFound) {
			return response.NotFound(c, "payment request not found")
		}
		return response.ServerError(c, "failed to revoke payment request")
	}
	return response.Success(c, "payment request revoked", nil)
}
