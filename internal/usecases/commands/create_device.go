package commands

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
	CreateDeviceCommand struct {
		Name  string
		Brand string
		State model.State
	}

	CreateDeviceCommandHandler = decorator.CommandHandler[CreateDeviceCommand, *model.Device]

	createDeviceCommandHandler struct {
		devicesService ports.DevicesService
		cache          ports.DevicesCache
	}
)

func NewCreateDeviceCommandHandler(
	svc ports.DevicesService,
	cache ports.DevicesCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[CreateDeviceCommand, *model.Device](
		createDeviceCommandHandler{devicesService: svc, cache: cache},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createDeviceCommandHandler) Handle(ctx context.Context, cmd CreateDeviceCommand) (*model.Device, error) {
	device, err := h.devicesService.CreateDevice(ctx, cmd.Name, cmd.Brand, cmd.State)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		go func() {
			_ = h.cache.InvalidateAllLists(context.Background())
		}()
	}

	return device, nil
}
