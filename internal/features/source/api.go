package source

import (
	"go-events/internal/config"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SourceApi struct {
	SourceController *SourceController
	Config           *config.Config
}

func NewSourceApi(sourceController *SourceController, config *config.Config) *SourceApi {
	return &SourceApi{
		SourceController: sourceController,
		Config:           config,
	}
}

func (api *SourceApi) Setup(app *fiber.App) {
	group := app.Group("/api/sources", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.SourceController.List)
	group.Get("/:key", api.SourceController.Get)
}
