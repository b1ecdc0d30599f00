package source

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type SourceController struct {
	Registry *Registry
}

func NewSourceController(registry *Registry) *SourceController {
	return &SourceController{Registry: registry}
}

func (c *SourceController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Registry.List())
}

func (c *SourceController) Get(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	def, err := c.Registry.Get(key)
	if err != nil {
		if errors.Is(err, ErrUnknownSource) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(def)
}
