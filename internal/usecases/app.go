package usecases

import (
	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/internal/usecases/commands"
	"github.com/Suleiman-Moraes/device-api/internal/usecases/queries"
	"github.com/Suleiman-Moraes/device-api/pkg/decorator"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		CreateDevice commands.CreateDeviceCommandHandler
		UpdateDevice commands.UpdateDeviceCommandHandler
		PatchDevice  commands.PatchDeviceCommandHandler
		DeleteDevice commands.DeleteDeviceCommandHandler
	}

	Queries struct {
		GetDevice         queries.GetDeviceQueryHandler
		ListDevices       queries.ListDevicesQueryHandler
		FetchLiveness     queries.FetchLivenessQueryHandler
		FetchReadiness    queries.FetchReadinessQueryHandler
		FetchHealthReport queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}

	// CacheAdapters bundles the query caches built around the devices cache.
	// All fields may be nil when caching is disabled.
	CacheAdapters struct {
		Devices   ports.DevicesCache
		GetDevice decorator.Cache[queries.GetDeviceQuery, *model.Device]
		List      decorator.Cache[queries.ListDevicesQuery, *model.DevicePage]
	}
)

func NewApplication(
	devicesSvc ports.DevicesService,
	caches CacheAdapters,
	cacheCfg config.DevicesCache,
	dbHealthChecker ports.DatabaseHealthChecker,
	cacheHealthChecker ports.CacheHealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	deviceCacheConfig := decorator.CacheConfig{
		Enabled: cacheCfg.Enabled,
		TTL:     cacheCfg.DeviceTTL,
	}
	listCacheConfig := decorator.CacheConfig{
		Enabled: cacheCfg.Enabled,
		TTL:     cacheCfg.ListTTL,
	}

	return &Application{
		Commands: Commands{
			CreateDevice: commands.NewCreateDeviceCommandHandler(devicesSvc, caches.Devices, log, metricsClient, tracerProvider),
			UpdateDevice: commands.NewUpdateDeviceCommandHandler(devicesSvc, caches.Devices, log, metricsClient, tracerProvider),
			PatchDevice:  commands.NewPatchDeviceCommandHandler(devicesSvc, caches.Devices, log, metricsClient, tracerProvider),
			DeleteDevice: commands.NewDeleteDeviceCommandHandler(devicesSvc, caches.Devices, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetDevice:         queries.NewGetDeviceQueryHandler(devicesSvc, caches.GetDevice, deviceCacheConfig, log, metricsClient, tracerProvider),
			ListDevices:       queries.NewListDevicesQueryHandler(devicesSvc, caches.List, listCacheConfig, log, metricsClient, tracerProvider),
			FetchLiveness:     queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness:    queries.NewFetchReadinessQueryHandler(dbHealthChecker, log, metricsClient, tracerProvider),
			FetchHealthReport: queries.NewFetchHealthReportQueryHandler(dbHealthChecker, cacheHealthChecker, log, metricsClient, tracerProvider),
		},
	}
}
