package repos

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	deviceCacheVersion = "v1"
	deviceKeyPrefix    = "device:" + deviceCacheVersion + ":"
	deviceListPrefix   = "devices:list:" + deviceCacheVersion + ":"
)

type (
	// cachedDevice represents a device in JSON format for caching.
	cachedDevice struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Brand     string    `json:"brand"`
		State     string    `json:"state"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// cachedDevicePage represents a device page in JSON format for caching.
	cachedDevicePage struct {
		Devices    []cachedDevice   `json:"devices"`
		Pagination model.Pagination `json:"pagination"`
	}

	// DevicesCacheRepository implements the DevicesCache interface using Redis.
	DevicesCacheRepository struct {
		client *infrastructure.CacheClient
		logger logger.Logger
	}
)

// NewDevicesCacheRepository creates a new devices cache repository.
func NewDevicesCacheRepository(client *infrastructure.CacheClient, log logger.Logger) *DevicesCacheRepository {
	return &DevicesCacheRepository{
		client: client,
		logger: log,
	}
}

// GetDevice retrieves a device from the cache by ID.
func (r *DevicesCacheRepository) GetDevice(ctx context.Context, id model.DeviceID) (*ports.CacheResult[*model.Device], error) {
	key := r.deviceKey(id)

	data, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ports.CacheResult[*model.Device]{
				Hit: false,
				Key: key,
			}, nil
		}

		return nil, fmt.Errorf("getting cached device: %w", err)
	}

	var cached cachedDevice
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshalling cached device: %w", err)
	}

	device, err := r.toDomainDevice(cached)
	if err != nil {
		return nil, fmt.Errorf("converting cached device: %w", err)
	}

	return &ports.CacheResult[*model.Device]{
		Data: device,
		Hit:  true,
		Key:  key,
		TTL:  r.client.TTL(ctx, key),
	}, nil
}

// SetDevice stores a device in the cache with the given TTL.
func (r *DevicesCacheRepository) SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error {
	key := r.deviceKey(device.ID)

	data, err := json.Marshal(r.toCachedDevice(device))
	if err != nil {
		return fmt.Errorf("marshalling device: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("setting cached device: %w", err)
	}

	return nil
}

// InvalidateDevice removes a device from the cache.
func (r *DevicesCacheRepository) InvalidateDevice(ctx context.Context, id model.DeviceID) error {
	key := r.deviceKey(id)

	if err := r.client.Delete(ctx, key); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidating cached device: %w", err)
	}

	return nil
}

// GetDeviceList retrieves a device page from the cache based on filter.
func (r *DevicesCacheRepository) GetDeviceList(ctx context.Context, filter model.DeviceFilter) (*ports.CacheResult[*model.DevicePage], error) {
	key := r.deviceListKey(filter)

	data, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ports.CacheResult[*model.DevicePage]{
				Hit: false,
				Key: key,
			}, nil
		}

		return nil, fmt.Errorf("getting cached device list: %w", err)
	}

	var cached cachedDevicePage
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshalling cached device list: %w", err)
	}

	page, err := r.toDomainDevicePage(cached, filter)
	if err != nil {
		return nil, fmt.Errorf("converting cached device list: %w", err)
	}

	return &ports.CacheResult[*model.DevicePage]{
		Data: page,
		Hit:  true,
		Key:  key,
		TTL:  r.client.TTL(ctx, key),
	}, nil
}

// SetDeviceList stores a device page in the cache with the given TTL.
func (r *DevicesCacheRepository) SetDeviceList(ctx context.Context, page *model.DevicePage, filter model.DeviceFilter, ttl time.Duration) error {
	key := r.deviceListKey(filter)

	data, err := json.Marshal(r.toCachedDevicePage(page))
	if err != nil {
		return fmt.Errorf("marshalling device list: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("setting cached device list: %w", err)
	}

	return nil
}

// InvalidateAllLists removes all device list caches.
func (r *DevicesCacheRepository) InvalidateAllLists(ctx context.Context) error {
	if _, err := r.purgeByPattern(ctx, fmt.Sprintf("%s*", deviceListPrefix)); err != nil {
		return fmt.Errorf("invalidating all device lists: %w", err)
	}

	return nil
}

// PurgeAll removes all device-related caches.
func (r *DevicesCacheRepository) PurgeAll(ctx context.Context) error {
	patterns := []string{
		fmt.Sprintf("%s*", deviceKeyPrefix),
		fmt.Sprintf("%s*", deviceListPrefix),
	}

	for _, pattern := range patterns {
		if _, err := r.purgeByPattern(ctx, pattern); err != nil {
			return fmt.Errorf("purging pattern %s: %w", pattern, err)
		}
	}

	return nil
}

// IsHealthy checks if the cache is available.
func (r *DevicesCacheRepository) IsHealthy(ctx context.Context) bool {
	return r.client.IsHealthy(ctx)
}

func (r *DevicesCacheRepository) deviceKey(id model.DeviceID) string {
	return deviceKeyPrefix + id.String()
}

func (r *DevicesCacheRepository) deviceListKey(filter model.DeviceFilter) string {
	return deviceListPrefix + r.hashFilter(filter)
}

func (r *DevicesCacheRepository) hashFilter(filter model.DeviceFilter) string {
	filter.Normalize()

	state := ""
	if filter.State != nil {
		state = filter.State.String()
	}

	filterKey := fmt.Sprintf(
		"brand=%s&name=%s&search=%s&state=%s&sort=%s:%s&page=%d&size=%d&paginate=%t",
		filter.Brand,
		filter.Name,
		filter.SearchText,
		state,
		filter.SortProperty,
		filter.SortDirection,
		filter.Page,
		filter.Size,
		filter.Paginate,
	)

	hash := sha256.Sum256([]byte(filterKey))

	return hex.EncodeToString(hash[:16])
}

func (r *DevicesCacheRepository) purgeByPattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var totalDeleted int64

	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, pattern, 100)
		if err != nil {
			return totalDeleted, fmt.Errorf("scanning keys: %w", err)
		}

		for _, key := range keys {
			if err := r.client.Delete(ctx, key); err != nil && !errors.Is(err, redis.Nil) {
				r.logger.Warn().Str("key", key).Err(err).Msg("failed to delete key during purge")
				continue
			}
			totalDeleted++
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return totalDeleted, nil
}

func (r *DevicesCacheRepository) toCachedDevice(device *model.Device) cachedDevice {
	return cachedDevice{
		ID:        device.ID.String(),
		Name:      device.Name,
		Brand:     device.Brand,
		State:     device.State.String(),
		CreatedAt: device.CreatedAt,
		UpdatedAt: device.UpdatedAt,
	}
}

func (r *DevicesCacheRepository) toDomainDevice(cached cachedDevice) (*model.Device, error) {
	id, err := model.ParseDeviceID(cached.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing device ID: %w", err)
	}

	state, err := model.ParseState(cached.State)
	if err != nil {
		return nil, fmt.Errorf("parsing device state: %w", err)
	}

	return &model.Device{
		ID:        id,
		Name:      cached.Name,
		Brand:     cached.Brand,
		State:     state,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

func (r *DevicesCacheRepository) toCachedDevicePage(page *model.DevicePage) cachedDevicePage {
	devices := make([]cachedDevice, len(page.Items))
	for index, device := range page.Items {
		devices[index] = r.toCachedDevice(device)
	}

	return cachedDevicePage{
		Devices:    devices,
		Pagination: page.Pagination,
	}
}

func (r *DevicesCacheRepository) toDomainDevicePage(cached cachedDevicePage, filter model.DeviceFilter) (*model.DevicePage, error) {
	devices := make([]*model.Device, len(cached.Devices))
	for index := range cached.Devices {
		device, err := r.toDomainDevice(cached.Devices[index])
		if err != nil {
			return nil, fmt.Errorf("converting device at index %d: %w", index, err)
		}
		devices[index] = device
	}

	return &model.DevicePage{
		Items:      devices,
		Pagination: cached.Pagination,
		Filters:    filter,
	}, nil
}
