package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pharmaudit/dashboard/internal/application/forms"
	"github.com/pharmaudit/dashboard/internal/application/query"
	"github.com/pharmaudit/dashboard/internal/application/usecase"
	"github.com/pharmaudit/dashboard/internal/infrastructure/metrics"
	"github.com/pharmaudit/dashboard/internal/infrastructure/upstream"
	httpRouter "github.com/pharmaudit/dashboard/internal/interfaces/http"
	"github.com/pharmaudit/dashboard/pkg/config"
	"github.com/pharmaudit/dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("starting dashboard service")

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	inventory := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, m)
	cache := query.New(m)

	searchUC := usecase.NewSearchUseCase(inventory, cache, cfg.Cache.SearchTTL)
	productUC := usecase.NewProductDataUseCase(inventory, cache, usecase.ProductDataTTLs{
		Stock: cfg.Cache.StockTTL,
		Sales: cfg.Cache.SalesTTL,
	})
	referenceUC := usecase.NewReferenceDataUseCase(inventory, cache, cfg.Cache.ReferenceTTL)
	createUC := usecase.NewCreateProductUseCase(inventory, cache)

	formRegistry := forms.NewRegistry(cfg.Forms.SessionTTL)
	defer formRegistry.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pharmacy Dashboard API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SearchUC:     searchUC,
		ProductUC:    productUC,
		ReferenceUC:  referenceUC,
		CreateUC:     createUC,
		Registry:     formRegistry,
		Metrics:      registry,
		Log:          log,
		SuccessDelay: cfg.Forms.SuccessDelay,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("dashboard service stopped")
}
