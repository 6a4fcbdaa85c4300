package http

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pharmaudit/dashboard/internal/application/forms"
	"github.com/pharmaudit/dashboard/internal/application/usecase"
	"github.com/pharmaudit/dashboard/pkg/logger"
)

// RouterDeps carries the dependencies of the router.
type RouterDeps struct {
	SearchUC     *usecase.SearchUseCase
	ProductUC    *usecase.ProductDataUseCase
	ReferenceUC  *usecase.ReferenceDataUseCase
	CreateUC     *usecase.CreateProductUseCase
	Registry     *forms.Registry
	Metrics      prometheus.Gatherer
	Log          *logger.Logger
	SuccessDelay time.Duration
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	dashboard := app.Group("/api/dashboard")

	dashboardHandler := NewDashboardHandler(deps.SearchUC, deps.ProductUC, deps.ReferenceUC)
	dashboard.Get("/search", dashboardHandler.Search)
	dashboard.Get("/product/:id/overview", dashboardHandler.Overview)
	dashboard.Get("/product/:id/timeline", dashboardHandler.Timeline)
	dashboard.Get("/product/:id/sales", dashboardHandler.Sales)
	dashboard.Get("/reference/suppliers", dashboardHandler.Suppliers)
	dashboard.Get("/reference/locations", dashboardHandler.Locations)

	formsHandler := NewFormsHandler(deps.Registry, deps.ProductUC, deps.CreateUC, deps.ReferenceUC, deps.SuccessDelay)
	formsGroup := dashboard.Group("/forms")
	formsGroup.Post("/:kind", formsHandler.Open)
	formsGroup.Get("/:kind/:id", formsHandler.Get)
	formsGroup.Put("/:kind/:id", formsHandler.Update)
	formsGroup.Post("/:kind/:id/submit", formsHandler.Submit)
	formsGroup.Delete("/:kind/:id", formsHandler.Close)
}
