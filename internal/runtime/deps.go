package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/internal/usecases"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		pool           *pgxpool.Pool
		cacheClient    *infrastructure.CacheClient
		logger         logger.Logger
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
	}

	repositories struct {
		devices      ports.DeviceRepository
		devicesCache ports.DevicesCache
		dbHealth     ports.DatabaseHealthChecker
	}

	servicesDep struct {
		devices ports.DevicesService
	}

	dependencies struct {
		config *config.ServiceConfig

		infra infrastructureDep

		repos repositories

		services servicesDep

		app *usecases.Application

		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}
