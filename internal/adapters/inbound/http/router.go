package http

import (
	"net/http"

	"github.com/Suleiman-Moraes/device-api/internal/adapters/inbound/http/handlers"
	"github.com/Suleiman-Moraes/device-api/internal/adapters/inbound/http/middleware"
	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/usecases"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const baseURL = "/v1"

type RouterConfig struct {
	App    *usecases.Application
	Logger logger.Logger
	Config *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.WriteTimeout))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS([]string{"*"}))

	if cfg.Config.Logging.AccessLog.Enabled {
		healthFilter := middleware.NewHealthCheckFilter(cfg.Config.Logging.AccessLog.LogHealthChecks)
		router.Use(healthFilter.Middleware)
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.IncludeQueryParams))
	}

	handler := handlers.NewDeviceHandler(cfg.App)

	router.Route(baseURL, func(r chi.Router) {
		r.Route("/devices", func(r chi.Router) {
			r.Post("/", handler.CreateDevice)
			r.Get("/", handler.ListDevices)

			r.Route("/{deviceID}", func(r chi.Router) {
				r.Get("/", handler.GetDevice)
				r.Put("/", handler.UpdateDevice)
				r.Patch("/", handler.PatchDevice)
				r.Delete("/", handler.DeleteDevice)
			})
		})

		r.Get("/livez", handler.LivenessCheck)
		r.Get("/readyz", handler.ReadinessCheck)
		r.Get("/healthz", handler.HealthCheck)
	})

	if cfg.Config.Telemetry.Enabled {
		cfg.Logger.Info().Msg("distributed tracing enabled")

		return otelhttp.NewHandler(router, "device-api")
	}

	return router
}
