package main

import (
	"context"
	"fmt"
	common_api "go-events/internal/common/api"
	"go-events/internal/config"
	"go-events/internal/database"
	"go-events/internal/features/finsync"
	"go-events/internal/features/record"
	"go-events/internal/features/report"
	"go-events/internal/features/schedule"
	"go-events/internal/features/source"
	"go-events/internal/features/template"
	"go-events/internal/logger"
	"go-events/internal/middleware"
	"go-events/pkg/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Data source catalog
			source.NewRegistry,

			// Initialize Repository
			record.NewRecordRepository,
			template.NewTemplateRepository,
			schedule.NewScheduleRepository,

			record.NewRecordService,
			report.NewExecutor,
			report.NewReportService,
			template.NewTemplateService,
			schedule.NewScheduleService,
			finsync.NewFinSyncService,

			// Interface Adapters to satisfy Fx
			func(s record.RecordService) report.RowSource { return s },

			// Initialize Controller
			source.NewSourceController,
			record.NewRecordController,
			report.NewReportController,
			template.NewTemplateController,
			schedule.NewScheduleController,
			finsync.NewFinSyncController,

			// Initialize API Routes
			AsRoute(source.NewSourceApi),
			AsRoute(record.NewRecordApi),
			AsRoute(report.NewReportApi),
			AsRoute(template.NewTemplateApi),
			AsRoute(schedule.NewScheduleApi),
			AsRoute(finsync.NewFinSyncApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduleService schedule.ScheduleService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduleService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduleService.StopScheduler()
					},
				})
			},
		),
	)

	app.Run()
}
