package handlers

import (
	"finch/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func HealthCheck(c *fiber.Ctx) error {
	database := "connected"
	if db, err := repositories.DB.DB(); err != nil || db.Ping() != nil {
		database = "unreachable"
	}

	redis := "connected"
	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		redis = "unreachable"
	}

	status := "ok"
	code := fiber.StatusOK
	if database != "connected" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": "1.0.0",
		"services": fiber.Map{
			"database": database,
			"redis":    redis,
		},
	})
}
