package queries

import (
	"context"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/pkg/decorator"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ListDevicesQuery struct {
		Filter model.DeviceFilter
	}

	ListDevicesQueryHandler = decorator.QueryHandler[ListDevicesQuery, *model.DevicePage]

	listDevicesQueryHandler struct {
		devicesService ports.DevicesService
	}
)

// NewListDevicesQueryHandler wires the list query. When a cache is
// supplied, results are served from it and refreshed in the background
// on a miss.
func NewListDevicesQueryHandler(
	svc ports.DevicesService,
	cache decorator.Cache[ListDevicesQuery, *model.DevicePage],
	cacheConfig decorator.CacheConfig,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListDevicesQueryHandler {
	return decorator.ApplyQueryDecorators[ListDevicesQuery, *model.DevicePage](
		decorator.NewQueryCachingDecorator[ListDevicesQuery, *model.DevicePage](
			listDevicesQueryHandler{devicesService: svc},
			cache,
			cacheConfig,
		),
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listDevicesQueryHandler) Execute(ctx context.Context, query ListDevicesQuery) (*model.DevicePage, error) {
	return h.devicesService.ListDevices(ctx, query.Filter)
}
