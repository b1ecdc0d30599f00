package report

import (
	"errors"
	"fmt"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

type runRequest struct {
	Configuration Configuration `json:"configuration"`
	Name          string        `json:"name"`
	EventName     string        `json:"event_name"`
}

func (c *ReportController) Run(ctx *fiber.Ctx) error {
	var req runRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	result, err := c.ReportService.Run(ctx.Context(), scope, req.Configuration)
	if err != nil {
		return reportError(ctx, err)
	}
	return ctx.JSON(result)
}

func (c *ReportController) Preview(ctx *fiber.Ctx) error {
	var req runRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	preview, err := c.ReportService.Preview(ctx.Context(), scope, req.Configuration)
	if err != nil {
		return reportError(ctx, err)
	}
	return ctx.JSON(preview)
}

func (c *ReportController) Export(ctx *fiber.Ctx) error {
	var req runRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scope, ok := middleware.ScopeFrom(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Missing tenant scope"})
	}

	format := ExportFormat(ctx.Query("format", string(FormatCSV)))
	export, err := c.ReportService.Export(ctx.Context(), scope, req.Configuration, format, req.Name, req.EventName)
	if err != nil {
		return reportError(ctx, err)
	}

	ctx.Set("Content-Type", export.ContentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	return ctx.Send(export.Data)
}

// reportError maps the error taxonomy onto status codes: configuration
// errors are the caller's to fix, superseded runs are a conflict, everything
// else is surfaced verbatim as a store failure.
func reportError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, source.ErrUnknownSource),
		errors.Is(err, ErrEmptyFields),
		errors.Is(err, ErrInvalidField),
		errors.Is(err, ErrDuplicateField),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrInvalidGrouping),
		errors.Is(err, ErrInvalidSort):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrSuperseded):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, common_models.ErrInvalidScope):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
