package template

import (
	"errors"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/report"
	"go-events/internal/features/source"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TemplateController struct {
	TemplateService TemplateService
}

func NewTemplateController(templateService TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

func (c *TemplateController) Create(ctx *fiber.Ctx) error {
	var tpl Template
	if err := ctx.BodyParser(&tpl); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.TemplateService.Save(ctx.Context(), scope, middleware.DisplayNameFrom(ctx), &tpl); err != nil {
		return templateError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(tpl)
}

func (c *TemplateController) Update(ctx *fiber.Ctx) error {
	var tpl Template
	if err := ctx.BodyParser(&tpl); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := ctx.Params("id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}
	tpl.ID = oid

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.TemplateService.Save(ctx.Context(), scope, middleware.DisplayNameFrom(ctx), &tpl); err != nil {
		return templateError(ctx, err)
	}
	return ctx.JSON(tpl)
}

func (c *TemplateController) Get(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	loaded, err := c.TemplateService.Get(ctx.Context(), scope, ctx.Params("id"))
	if err != nil {
		return templateError(ctx, err)
	}
	return ctx.JSON(loaded)
}

func (c *TemplateController) List(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	templates, err := c.TemplateService.List(ctx.Context(), scope)
	if err != nil {
		return templateError(ctx, err)
	}
	return ctx.JSON(templates)
}

func (c *TemplateController) Delete(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.TemplateService.Delete(ctx.Context(), scope, ctx.Params("id")); err != nil {
		return templateError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func templateError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, report.ErrEmptyFields),
		errors.Is(err, source.ErrUnknownSource):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrWrongTenant),
		errors.Is(err, ErrNotShared),
		errors.Is(err, common_models.ErrInvalidScope):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, mongo.ErrNoDocuments):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
