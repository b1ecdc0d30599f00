package finsync

import (
	"go-events/internal/config"
	"go-events/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FinSyncApi struct {
	FinSyncController *FinSyncController
	Config            *config.Config
}

func NewFinSyncApi(finSyncController *FinSyncController, config *config.Config) *FinSyncApi {
	return &FinSyncApi{
		FinSyncController: finSyncController,
		Config:            config,
	}
}

func (api *FinSyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/finsync", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/run", api.FinSyncController.Run)
}
