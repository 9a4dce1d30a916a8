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
	PatchDeviceCommand struct {
		ID      model.DeviceID
		Changes model.ChangeProposal
	}

	PatchDeviceCommandHandler = decorator.CommandHandler[PatchDeviceCommand, *model.Device]

	patchDeviceCommandHandler struct {
		devicesService ports.DevicesService
		cache          ports.DevicesCache
	}
)

func NewPatchDeviceCommandHandler(
	svc ports.DevicesService,
	cache ports.DevicesCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) PatchDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[PatchDeviceCommand, *model.Device](
		patchDeviceCommandHandler{devicesService: svc, cache: cache},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h patchDeviceCommandHandler) Handle(ctx context.Context, cmd PatchDeviceCommand) (*model.Device, error) {
	device, err := h.devicesService.PatchDevice(ctx, cmd.ID, cmd.Changes)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		go func() {
			bgCtx := context.Background()
			_ = h.cache.InvalidateDevice(bgCtx, cmd.ID)
			_ = h.cache.InvalidateAllLists(bgCtx)
		}()
	}

	return device, nil
}
