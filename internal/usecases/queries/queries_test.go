package queries

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure"
	"github.com/Suleiman-Moraes/device-api/pkg/decorator"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
)

type mockDevicesService struct {
	getFunc  func(ctx context.Context, id model.DeviceID) (*model.Device, error)
	listFunc func(ctx context.Context, filter model.DeviceFilter) (*model.DevicePage, error)
}

func (m *mockDevicesService) CreateDevice(context.Context, string, string, model.State) (*model.Device, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return m.getFunc(ctx, id)
}

func (m *mockDevicesService) ListDevices(ctx context.Context, filter model.DeviceFilter) (*model.DevicePage, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockDevicesService) UpdateDevice(context.Context, model.DeviceID, string, string, model.State) (*model.Device, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDevicesService) PatchDevice(context.Context, model.DeviceID, model.ChangeProposal) (*model.Device, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDevicesService) DeleteDevice(context.Context, model.DeviceID) error {
	return errors.New("not implemented")
}

type mockDeviceCache struct {
	device *model.Device
	sets   atomic.Int64
}

func (m *mockDeviceCache) Get(context.Context, GetDeviceQuery) (*model.Device, bool, error) {
	return m.device, m.device != nil, nil
}

func (m *mockDeviceCache) Set(context.Context, GetDeviceQuery, *model.Device, time.Duration) error {
	m.sets.Add(1)

	return nil
}

type mockListCache struct {
	page *model.DevicePage
	sets atomic.Int64
}

func (m *mockListCache) Get(context.Context, ListDevicesQuery) (*model.DevicePage, bool, error) {
	return m.page, m.page != nil, nil
}

func (m *mockListCache) Set(context.Context, ListDevicesQuery, *model.DevicePage, time.Duration) error {
	m.sets.Add(1)

	return nil
}

type mockDBHealthChecker struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDBHealthChecker) Ping(ctx context.Context) error {
	return m.pingFunc(ctx)
}

type mockCacheHealthChecker struct {
	healthy bool
}

func (m *mockCacheHealthChecker) IsHealthy(context.Context) bool {
	return m.healthy
}

func TestGetDeviceQueryHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns device from service when cache misses", func(t *testing.T) {
		t.Parallel()

		device := model.NewDevice("iPhone 15", "Apple", model.StateAvailable)
		svc := &mockDevicesService{
			getFunc: func(_ context.Context, id model.DeviceID) (*model.Device, error) {
				require.Equal(t, device.ID, id)

				return device, nil
			},
		}
		cache := &mockDeviceCache{}

		handler := NewGetDeviceQueryHandler(
			svc,
			cache,
			decorator.CacheConfig{Enabled: true, TTL: time.Minute},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), GetDeviceQuery{ID: device.ID})

		require.NoError(t, err)
		require.Equal(t, device, result)

		require.Eventually(t, func() bool {
			return cache.sets.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("serves a cache hit without calling the service", func(t *testing.T) {
		t.Parallel()

		cached := model.NewDevice("Pixel 9", "Google", model.StateInUse)
		svc := &mockDevicesService{
			getFunc: func(context.Context, model.DeviceID) (*model.Device, error) {
				t.Fatal("service should not be called on a cache hit")

				return nil, nil
			},
		}

		handler := NewGetDeviceQueryHandler(
			svc,
			&mockDeviceCache{device: cached},
			decorator.CacheConfig{Enabled: true, TTL: time.Minute},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), GetDeviceQuery{ID: cached.ID})

		require.NoError(t, err)
		require.Equal(t, cached, result)
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()

		svc := &mockDevicesService{
			getFunc: func(context.Context, model.DeviceID) (*model.Device, error) {
				return nil, model.ErrDeviceNotFound
			},
		}

		handler := NewGetDeviceQueryHandler(
			svc,
			nil,
			decorator.CacheConfig{},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		_, err := handler.Execute(context.Background(), GetDeviceQuery{ID: model.NewDeviceID()})

		require.ErrorIs(t, err, model.ErrDeviceNotFound)
	})
}

func TestListDevicesQueryHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns page from service", func(t *testing.T) {
		t.Parallel()

		filter := model.DeviceFilter{Brand: "Apple"}
		page := &model.DevicePage{
			Items:      []*model.Device{model.NewDevice("iPhone 15", "Apple", model.StateAvailable)},
			Pagination: model.Pagination{TotalItems: 1},
		}

		svc := &mockDevicesService{
			listFunc: func(_ context.Context, gotFilter model.DeviceFilter) (*model.DevicePage, error) {
				require.Equal(t, "Apple", gotFilter.Brand)

				return page, nil
			},
		}
		cache := &mockListCache{}

		handler := NewListDevicesQueryHandler(
			svc,
			cache,
			decorator.CacheConfig{Enabled: true, TTL: time.Minute},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), ListDevicesQuery{Filter: filter})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)

		require.Eventually(t, func() bool {
			return cache.sets.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("serves a cache hit without calling the service", func(t *testing.T) {
		t.Parallel()

		cached := &model.DevicePage{Items: []*model.Device{}}
		svc := &mockDevicesService{
			listFunc: func(context.Context, model.DeviceFilter) (*model.DevicePage, error) {
				t.Fatal("service should not be called on a cache hit")

				return nil, nil
			},
		}

		handler := NewListDevicesQueryHandler(
			svc,
			&mockListCache{page: cached},
			decorator.CacheConfig{Enabled: true, TTL: time.Minute},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), ListDevicesQuery{})

		require.NoError(t, err)
		require.Equal(t, cached, result)
	})

	t.Run("bypasses a disabled cache", func(t *testing.T) {
		t.Parallel()

		page := &model.DevicePage{Items: []*model.Device{}}
		svc := &mockDevicesService{
			listFunc: func(context.Context, model.DeviceFilter) (*model.DevicePage, error) {
				return page, nil
			},
		}
		cache := &mockListCache{page: &model.DevicePage{}}

		handler := NewListDevicesQueryHandler(
			svc,
			cache,
			decorator.CacheConfig{Enabled: false},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), ListDevicesQuery{})

		require.NoError(t, err)
		require.Equal(t, page, result)
		require.Zero(t, cache.sets.Load())
	})
}

func TestFetchLivenessQueryHandler(t *testing.T) {
	t.Parallel()

	handler := NewFetchLivenessQueryHandler(
		logger.NewTestLogger(),
		noop.NewMetricsClient(),
		infrastructure.NewNoopTracerProvider(),
	)

	result, err := handler.Execute(context.Background(), FetchLivenessQuery{})

	require.NoError(t, err)
	require.Equal(t, "ok", result.Status)
}

func TestFetchReadinessQueryHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		pingErr        error
		expectedStatus string
		expectedReady  bool
	}{
		{
			name:           "ready when database responds",
			expectedStatus: "ok",
			expectedReady:  true,
		},
		{
			name:           "unavailable when database is down",
			pingErr:        errors.New("connection refused"),
			expectedStatus: "unavailable",
			expectedReady:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewFetchReadinessQueryHandler(
				&mockDBHealthChecker{pingFunc: func(context.Context) error { return tt.pingErr }},
				logger.NewTestLogger(),
				noop.NewMetricsClient(),
				infrastructure.NewNoopTracerProvider(),
			)

			result, err := handler.Execute(context.Background(), FetchReadinessQuery{})

			require.NoError(t, err)
			require.Equal(t, tt.expectedStatus, result.Status)
			require.Equal(t, tt.expectedReady, result.Ready)
		})
	}
}

func TestFetchHealthReportQueryHandler(t *testing.T) {
	t.Parallel()

	t.Run("reports healthy with database and cache dependencies", func(t *testing.T) {
		t.Parallel()

		handler := NewFetchHealthReportQueryHandler(
			&mockDBHealthChecker{pingFunc: func(context.Context) error { return nil }},
			&mockCacheHealthChecker{healthy: true},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), FetchHealthReportQuery{})

		require.NoError(t, err)
		require.Equal(t, "healthy", result.Status)
		require.NotEmpty(t, result.Uptime)
		require.True(t, result.Dependencies["postgres"].Healthy)
		require.True(t, result.Dependencies["cache"].Healthy)
	})

	t.Run("reports unhealthy when the database is down", func(t *testing.T) {
		t.Parallel()

		handler := NewFetchHealthReportQueryHandler(
			&mockDBHealthChecker{pingFunc: func(context.Context) error { return errors.New("connection refused") }},
			nil,
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), FetchHealthReportQuery{})

		require.NoError(t, err)
		require.Equal(t, "unhealthy", result.Status)
		require.False(t, result.Dependencies["postgres"].Healthy)
		require.Equal(t, "connection refused", result.Dependencies["postgres"].Message)
		require.NotContains(t, result.Dependencies, "cache")
	})

	t.Run("cache outage does not flip overall status", func(t *testing.T) {
		t.Parallel()

		handler := NewFetchHealthReportQueryHandler(
			&mockDBHealthChecker{pingFunc: func(context.Context) error { return nil }},
			&mockCacheHealthChecker{healthy: false},
			logger.NewTestLogger(),
			noop.NewMetricsClient(),
			infrastructure.NewNoopTracerProvider(),
		)

		result, err := handler.Execute(context.Background(), FetchHealthReportQuery{})

		require.NoError(t, err)
		require.Equal(t, "healthy", result.Status)
		require.False(t, result.Dependencies["cache"].Healthy)
	})
}
