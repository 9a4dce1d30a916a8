package runtime

import (
	"context"
	"fmt"
	"net/http"

	inboundhttp "github.com/Suleiman-Moraes/device-api/internal/adapters/inbound/http"
	"github.com/Suleiman-Moraes/device-api/internal/adapters/repos"
	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure/postgres"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/internal/services"
	"github.com/Suleiman-Moraes/device-api/internal/usecases"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics/noop"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithMetrics(),
		WithTracing(),
		WithDatabase(ctx),
		WithCache(),
		WithDevicesRepository(),
		WithDevicesService(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		d.infra.metricsClient = noop.NewMetricsClient()

		return nil
	}
}

func WithTracing() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || d.config.Telemetry.OTLPEndpoint == "" {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(
			d.config.App.ServiceName,
			config.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.cleanupFuncs["tracer"] = func(ctx context.Context) error {
			return shutdown(ctx)
		}

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := postgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}

		d.infra.pool = pool
		d.cleanupFuncs["postgres"] = func(context.Context) error {
			pool.Close()

			return nil
		}

		return nil
	}
}

func WithCache() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Cache.Enabled {
			return nil
		}

		client := infrastructure.NewCacheClient(d.config.Cache, d.infra.logger)
		d.infra.cacheClient = client
		d.repos.devicesCache = repos.NewDevicesCacheRepository(client, d.infra.logger)
		d.cleanupFuncs["cache"] = func(context.Context) error {
			return client.Close()
		}

		return nil
	}
}

func WithDevicesRepository() DependencyOption {
	return func(d *dependencies) error {
		repo := repos.NewDevicesRepository(
			d.infra.pool,
			repos.NewPgxScanner(),
			repos.NewCriteriaTranslator(&d.infra.logger),
			d.infra.logger,
		)

		d.repos.devices = repo
		d.repos.dbHealth = repo

		return nil
	}
}

func WithDevicesService() DependencyOption {
	return func(d *dependencies) error {
		d.services.devices = services.NewDevicesService(d.repos.devices)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		caches := usecases.CacheAdapters{}
		var cacheHealthChecker ports.CacheHealthChecker

		if d.repos.devicesCache != nil {
			caches.Devices = d.repos.devicesCache
			caches.GetDevice = repos.NewGetDeviceCacheAdapter(d.repos.devicesCache)
			caches.List = repos.NewListDevicesCacheAdapter(d.repos.devicesCache)
			cacheHealthChecker = d.infra.cacheClient
		}

		d.app = usecases.NewApplication(
			d.services.devices,
			caches,
			d.config.DevicesCache,
			d.repos.dbHealth,
			cacheHealthChecker,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:    d.app,
			Logger: d.infra.logger,
			Config: d.config,
		})

		d.infra.httpServer = &http.Server{
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		return nil
	}
}
