package template

import (
	"go-events/internal/config"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	TemplateController *TemplateController
	Config             *config.Config
}

func NewTemplateApi(templateController *TemplateController, config *config.Config) *TemplateApi {
	return &TemplateApi{
		TemplateController: templateController,
		Config:             config,
	}
}

func (api *TemplateApi) Setup(app *fiber.App) {
	group := app.Group("/api/templates", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.TemplateController.Create)
	group.Get("/", api.TemplateController.List)
	group.Get("/:id", api.TemplateController.Get)
	group.Put("/:id", api.TemplateController.Update)
	group.Delete("/:id", api.TemplateController.Delete)
}
