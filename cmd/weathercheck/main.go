package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"

	httpapi "weathercheck/internal/api/http"
	"weathercheck/internal/config"
	"weathercheck/internal/observability"
	"weathercheck/internal/scheduler"
	"weathercheck/internal/weather"
	"weathercheck/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewGeocodingClient(httpClient, cfg.GeocodeURL, metrics)
	forecasts := providers.NewForecastClient(httpClient, cfg.ForecastURL, metrics)

	// Core service orchestrating geocode → forecast with TTL caches.
	service := weather.NewService(
		geocoder,
		forecasts,
		cfg.GeocodeCacheTTL,
		cfg.ForecastCacheTTL,
		clockwork.NewRealClock(),
		metrics,
	)

	// Janitor that periodically drops expired cache entries.
	janitor := scheduler.New(service, cfg.CacheSweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weathercheck",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weathercheck",
		})
	})

	// Pages and API routes.
	httpapi.RegisterRoutes(app, service, cfg.DefaultCity, metrics)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
