package ports

import (
	"context"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
)

// DevicesService defines the interface for device business operations.
type DevicesService interface {
	// CreateDevice creates a new device with the given parameters.
	CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error)

	// GetDevice retrieves a device by its ID.
	GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// ListDevices retrieves a page of devices matching the filter.
	ListDevices(ctx context.Context, filter model.DeviceFilter) (*model.DevicePage, error)

	// UpdateDevice fully updates a device; every mutable field is applied.
	UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error)

	// PatchDevice partially updates a device with the supplied changes.
	PatchDevice(ctx context.Context, id model.DeviceID, proposal model.ChangeProposal) (*model.Device, error)

	// DeleteDevice deletes a device by its ID.
	DeleteDevice(ctx context.Context, id model.DeviceID) error
}
