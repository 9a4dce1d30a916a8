package ports

import (
	"context"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
)

// DeviceRepository defines the interface for device persistence operations.
type DeviceRepository interface {
	// Create stores a new device in the database.
	Create(ctx context.Context, device *model.Device) error

	// GetByID retrieves a device by its ID.
	GetByID(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// FindByFilter retrieves a page of devices matching the filter. It
	// never fails: query errors degrade to an empty page and are logged.
	FindByFilter(ctx context.Context, filter model.DeviceFilter) *model.DevicePage

	// Count returns the total number of devices matching the filter's
	// predicate. Unlike FindByFilter, errors propagate to the caller.
	Count(ctx context.Context, filter model.DeviceFilter) (uint, error)

	// Update updates an existing device in the database.
	Update(ctx context.Context, device *model.Device) error

	// Delete removes a device from the database by its ID.
	Delete(ctx context.Context, id model.DeviceID) error

	// Exists checks if a device with the given ID exists.
	Exists(ctx context.Context, id model.DeviceID) (bool, error)
}
