package finsync

import (
	"errors"

	common_models "go-events/internal/common/models"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FinSyncController struct {
	FinSyncService FinSyncService
}

func NewFinSyncController(finSyncService FinSyncService) *FinSyncController {
	return &FinSyncController{FinSyncService: finSyncService}
}

func (c *FinSyncController) Run(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	result, err := c.FinSyncService.Run(ctx.Context(), scope)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, common_models.ErrInvalidScope):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}
