package handlers

import (
	"errors"
	"strconv"
	"strings"

	"finch/internal/models"
	"finch/internal/services/card"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// LinkCard tokenizes and stores a new card for the caller
func (h *CardHandler) LinkCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.LinkCardInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	linked, err := h.cardService.LinkCard(c.Context(), claims.UserID, input)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "card linked",
		"data":    linked,
	})
}

// GetUserCards lists the caller's cards, optionally filtered by kind
// (?kind=credit,debit)
func (h *CardHandler) GetUserCards(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var kinds []string
	if raw := c.Query("kind"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kinds = append(kinds, k)
			}
		}
	}

	cards, err := h.cardService.GetUserCards(c.Context(), claims.UserID, kinds...)
	if err != nil {
		return response.ServerError(c, "failed to load cards")
	}
	return response.Success(c, "cards", cards)
}

// DeleteCard removes a card owned by the caller
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	cardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid card id")
	}

	if err := h.cardService.DeleteCard(c.Context(), claims.UserID, uint(cardID)); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return response.NotFound(c, err.Error())
		}
		if errors.Is(err, card.ErrCardNotBelongToUser) {
			return response.Error(c, fiber.StatusForbidden, err.Error())
		}
		return response.ServerError(c, "failed to delete card")
	}
	return response.Success(c, "card deleted", nil)
}
