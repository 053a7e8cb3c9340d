package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weathercheck/internal/observability"
	"weathercheck/internal/view"
	"weathercheck/internal/weather"
)

var validate = validator.New()

// User-facing messages for failed submissions.
const (
	msgEmptyInput      = "Please type a city name."
	msgPlaceNotFound   = "Sorry, I couldn't find that city. Try a different spelling (e.g., 'Sydney, AU')."
	msgForecastFailure = "Could not fetch weather data. Please try again."
)

// RegisterRoutes wires the HTML pages, the JSON API, and /metrics into the
// Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultCity string, metrics *observability.Metrics) {
	app.Get("/", func(c *fiber.Ctx) error {
		return sendPage(c, pageData{City: defaultCity})
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		return handleWeatherPage(c, service, metrics)
	})

	v1 := app.Group("/api/v1")
	v1.Get("/weather", func(c *fiber.Ctx) error {
		return handleWeatherJSON(c, service, metrics)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// handleWeatherPage runs one submission: geocode, fetch, render. Every
// failure renders a message on the same page and stops there.
func handleWeatherPage(c *fiber.Ctx, service *weather.Service, metrics *observability.Metrics) error {
	city := c.Query("city")

	if strings.TrimSpace(city) == "" {
		metrics.ReportsServed.WithLabelValues("empty_input").Inc()
		return sendPage(c, pageData{City: city, Message: msgEmptyInput, MessageKind: "warn"})
	}

	report, err := service.GetReport(c.Context(), city)
	switch {
	case errors.Is(err, weather.ErrPlaceNotFound):
		metrics.ReportsServed.WithLabelValues("not_found").Inc()
		return sendPage(c, pageData{City: city, Message: msgPlaceNotFound, MessageKind: "error"})
	case errors.Is(err, weather.ErrForecastUnavailable):
		metrics.ReportsServed.WithLabelValues("fetch_failed").Inc()
		return sendPage(c, pageData{City: city, Message: msgForecastFailure, MessageKind: "error"})
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather report")
	}

	metrics.ReportsServed.WithLabelValues("ok").Inc()
	display := view.BuildReport(report)
	return sendPage(c, pageData{City: city, Report: &display})
}

func sendPage(c *fiber.Ctx, data pageData) error {
	html, err := renderPage(data)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// weatherQuery holds the JSON API query parameters.
type weatherQuery struct {
	City string `validate:"required"`
}

func handleWeatherJSON(c *fiber.Ctx, service *weather.Service, metrics *observability.Metrics) error {
	q := weatherQuery{City: strings.TrimSpace(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		metrics.ReportsServed.WithLabelValues("empty_input").Inc()
		return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
	}

	report, err := service.GetReport(c.Context(), q.City)
	switch {
	case errors.Is(err, weather.ErrPlaceNotFound):
		metrics.ReportsServed.WithLabelValues("not_found").Inc()
		return fiber.NewError(fiber.StatusNotFound, "no place found for requested city")
	case errors.Is(err, weather.ErrForecastUnavailable):
		metrics.ReportsServed.WithLabelValues("fetch_failed").Inc()
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast for requested city")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather report")
	}

	metrics.ReportsServed.WithLabelValues("ok").Inc()
	return c.JSON(report)
}
