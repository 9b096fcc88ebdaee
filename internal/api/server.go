// Package api assembles the Echo router, middleware and Huma operations of
// the tcg-analytics HTTP server.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/tcg-analytics/api/openapi"
	"github.com/donaldgifford/tcg-analytics/internal/api/handlers"
	mw "github.com/donaldgifford/tcg-analytics/internal/api/middleware"
	"github.com/donaldgifford/tcg-analytics/pkg/logger"
)

const (
	title       = "TCG Analytics API"
	description = "JustTCG card pricing enriched with live eBay listings."
)

// Service is everything the HTTP surface needs from the domain layer.
type Service interface {
	handlers.CardLookup
	handlers.MarketSearcher
}

// Server holds the Echo instance and the Huma API registered on it.
type Server struct {
	Echo *echo.Echo
	API  huma.API
}

type options struct {
	log     *slog.Logger
	version string
	tracing bool
}

// Option configures the Server.
type Option func(*options)

// WithLogger sets the logger used by the request log and recovery middleware.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithVersion sets the version reported in the OpenAPI document.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithTracing wraps every request in an OpenTelemetry server span.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracing = enabled
	}
}

// NewServer builds the router. Unknown paths answer 404 and known paths with
// the wrong method answer 405, both from Echo.
func NewServer(svc Service, opts ...Option) *Server {
	o := &options{log: logger.Discard(), version: "dev"}
	for _, opt := range opts {
		opt(o)
	}
	log := logger.Component(o.log, "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if o.tracing {
		e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("tcg-analytics")))
	}
	e.Use(mw.RequestLog(log))
	e.Use(mw.Recovery(log))
	e.Use(mw.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	cfg := huma.DefaultConfig(title, o.version)
	cfg.Info.Description = description
	api := humaecho.New(e, cfg)

	handlers.RegisterHealthRoutes(api)
	handlers.RegisterCardRoutes(api, handlers.NewCardsHandler(svc))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(svc))

	return &Server{Echo: e, API: api}
}
