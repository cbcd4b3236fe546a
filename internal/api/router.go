package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vollmed/registry-api/docs"
	"github.com/vollmed/registry-api/internal/api/handler"
	"github.com/vollmed/registry-api/internal/api/middleware"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// Dependencies is everything the router needs to serve the registry.
type Dependencies struct {
	Practitioners ports.PractitionerService
	Clients       ports.ClientService

	// Readiness is optional; /health/ready is not registered when nil.
	Readiness *handler.HealthDependenciesHandler

	// Metrics collectors for the HTTP middleware and the /metrics endpoint.
	// Both are optional; in production they are the prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "registry",
			Registerer: deps.Registerer,
		}))
	}

	// --- Practitioner routes ---
	practitioners := handler.NewPractitionerHandler(deps.Practitioners)
	pg := e.Group("/practitioners")
	pg.POST("", practitioners.Create, middleware.IdempotencyKey())
	pg.GET("", practitioners.List)
	pg.GET("/:id", practitioners.Get)
	pg.PUT("/:id", practitioners.Update)
	pg.DELETE("/:id", practitioners.Delete)

	// --- Client routes ---
	clients := handler.NewClientHandler(deps.Clients)
	cg := e.Group("/clients")
	cg.POST("", clients.Create, middleware.IdempotencyKey())
	cg.GET("", clients.List)
	cg.GET("/:id", clients.Get)
	cg.PUT("/:id", clients.Update)
	cg.DELETE("/:id", clients.Delete)

	// --- Operational endpoints ---
	e.GET("/health", handler.NewHealthHandler().Liveness) // liveness  – is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness – are dependencies up?
	}
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
