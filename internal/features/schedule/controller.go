package schedule

import (
	"errors"

	common_models "go-events/internal/common/models"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleController struct {
	ScheduleService ScheduleService
}

func NewScheduleController(scheduleService ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

func (c *ScheduleController) Create(ctx *fiber.Ctx) error {
	var sched Schedule
	if err := ctx.BodyParser(&sched); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.ScheduleService.Create(ctx.Context(), scope, middleware.DisplayNameFrom(ctx), &sched); err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(sched)
}

func (c *ScheduleController) Get(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	sched, err := c.ScheduleService.Get(ctx.Context(), scope, ctx.Params("id"))
	if err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.JSON(sched)
}

func (c *ScheduleController) List(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	schedules, err := c.ScheduleService.List(ctx.Context(), scope)
	if err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.JSON(schedules)
}

func (c *ScheduleController) Update(ctx *fiber.Ctx) error {
	var sched Schedule
	if err := ctx.BodyParser(&sched); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	oid, err := primitive.ObjectIDFromHex(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}
	sched.ID = oid

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.ScheduleService.Update(ctx.Context(), scope, &sched); err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.JSON(sched)
}

func (c *ScheduleController) Delete(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.ScheduleService.Delete(ctx.Context(), scope, ctx.Params("id")); err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *ScheduleController) RunNow(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	if err := c.ScheduleService.RunNow(ctx.Context(), scope, ctx.Params("id")); err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "completed"})
}

func (c *ScheduleController) Logs(ctx *fiber.Ctx) error {
	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	logs, err := c.ScheduleService.Logs(ctx.Context(), scope, ctx.Params("id"), ctx.QueryInt("limit", 50))
	if err != nil {
		return scheduleError(ctx, err)
	}
	return ctx.JSON(logs)
}

func scheduleError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrWrongTenant), errors.Is(err, common_models.ErrInvalidScope):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
