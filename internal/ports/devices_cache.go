package ports

import (
	"context"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
)

// CacheResult holds the result of a cache lookup along with metadata.
type CacheResult[T any] struct {
	Data T
	Hit  bool
	Key  string
	TTL  time.Duration
}

// DevicesCache defines the interface for device caching operations.
type DevicesCache interface {
	// GetDevice retrieves a device from the cache by ID.
	// Returns a CacheResult with Hit=false if the device is not cached.
	GetDevice(ctx context.Context, id model.DeviceID) (*CacheResult[*model.Device], error)

	// SetDevice stores a device in the cache with the given TTL.
	SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error

	// InvalidateDevice removes a device from the cache.
	InvalidateDevice(ctx context.Context, id model.DeviceID) error

	// GetDeviceList retrieves a cached list result for the given filter.
	GetDeviceList(ctx context.Context, filter model.DeviceFilter) (*CacheResult[*model.DevicePage], error)

	// SetDeviceList stores a list result in the cache with the given TTL.
	SetDeviceList(ctx context.Context, page *model.DevicePage, filter model.DeviceFilter, ttl time.Duration) error

	// InvalidateAllLists removes every cached list result.
	InvalidateAllLists(ctx context.Context) error
}
