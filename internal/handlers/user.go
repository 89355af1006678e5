package handlers

import (
	"errors"

	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/services/user"
	"finch/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// extractUserClaims is a helper to reduce duplication across handlers
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// RegisterUser opens a demo bank account for a new user
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input user.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) || errors.Is(err, repositories.ErrUsernameTaken) {
			return response.Error(c, fiber.StatusConflict, err.Error())
		}
		return response.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "account created",
		"data": fiber.Map{
			"id":             created.ID,
			"name":           created.Name,
			"email":          created.Email,
			"username":       created.Username,
			"account_number": created.Account.AccountNumber,
		},
	})
}

// GetProfile returns the caller's profile with account details
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	profile, err := h.userService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to get profile")
	}
	return response.Success(c, "profile", profile)
}
