package record

import (
	"errors"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type RecordController struct {
	RecordService RecordService
}

func NewRecordController(recordService RecordService) *RecordController {
	return &RecordController{RecordService: recordService}
}

func (c *RecordController) Create(ctx *fiber.Ctx) error {
	var doc map[string]any
	if err := ctx.BodyParser(&doc); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	id, err := c.RecordService.Create(ctx.Context(), scope, ctx.Params("source"), doc)
	if err != nil {
		return recordError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (c *RecordController) List(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	page := int64(ctx.QueryInt("page", 1))
	limit := int64(ctx.QueryInt("limit", 50))

	rows, total, err := c.RecordService.List(ctx.Context(), scope, ctx.Params("source"), page, limit)
	if err != nil {
		return recordError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"data": rows, "total": total, "page": page})
}

func (c *RecordController) Update(ctx *fiber.Ctx) error {
	var doc map[string]any
	if err := ctx.BodyParser(&doc); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.RecordService.Update(ctx.Context(), scope, ctx.Params("source"), ctx.Params("id"), doc); err != nil {
		return recordError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *RecordController) Delete(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.RecordService.Delete(ctx.Context(), scope, ctx.Params("source"), ctx.Params("id")); err != nil {
		return recordError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func recordError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, source.ErrUnknownSource):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, mongo.ErrNoDocuments):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	case errors.Is(err, common_models.ErrInvalidScope):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
