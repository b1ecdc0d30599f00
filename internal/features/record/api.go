package record

import (
	"go-events/internal/config"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RecordApi struct {
	RecordController *RecordController
	Config           *config.Config
}

func NewRecordApi(recordController *RecordController, config *config.Config) *RecordApi {
	return &RecordApi{
		RecordController: recordController,
		Config:           config,
	}
}

func (api *RecordApi) Setup(app *fiber.App) {
	group := app.Group("/api/records/:source", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.RecordController.Create)
	group.Get("/", api.RecordController.List)
	group.Put("/:id", api.RecordController.Update)
	group.Delete("/:id", api.RecordController.Delete)
}
