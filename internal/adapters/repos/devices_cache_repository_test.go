package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/adapters/repos"
	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/infrastructure"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
)

type DevicesCacheRepositoryTestSuite struct {
	suite.Suite
	miniRedis   *miniredis.Miniredis
	cacheClient *infrastructure.CacheClient
	repo        *repos.DevicesCacheRepository
}

func TestDevicesCacheRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DevicesCacheRepositoryTestSuite))
}

func (s *DevicesCacheRepositoryTestSuite) SetupTest() {
	var err error
	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	cfg := config.Cache{
		Address:      s.miniRedis.Addr(),
		Password:     "",
		DB:           0,
		PoolSize:     5,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}

	s.cacheClient = infrastructure.NewCacheClient(cfg, logger.NewTestLogger())
	s.repo = repos.NewDevicesCacheRepository(s.cacheClient, logger.NewTestLogger())
}

func (s *DevicesCacheRepositoryTestSuite) TearDownTest() {
	if s.cacheClient != nil {
		_ = s.cacheClient.Close()
	}
	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
}

func (s *DevicesCacheRepositoryTestSuite) TestGetDevice_NotCached() {
	ctx := context.Background()
	id := model.NewDeviceID()

	result, err := s.repo.GetDevice(ctx, id)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Require().False(result.Hit)
	s.Require().Nil(result.Data)
}

func (s *DevicesCacheRepositoryTestSuite) TestSetAndGetDevice() {
	ctx := context.Background()
	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)

	err := s.repo.SetDevice(ctx, device, time.Hour)
	s.Require().NoError(err)

	result, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().True(result.Hit)
	s.Require().Equal(device.ID, result.Data.ID)
	s.Require().Equal(device.Name, result.Data.Name)
	s.Require().Equal(device.Brand, result.Data.Brand)
	s.Require().Equal(device.State, result.Data.State)
}

func (s *DevicesCacheRepositoryTestSuite) TestInvalidateDevice() {
	ctx := context.Background()
	device := model.NewDevice("Test Device", "Test Brand", model.StateInUse)

	s.Require().NoError(s.repo.SetDevice(ctx, device, time.Hour))
	s.Require().NoError(s.repo.InvalidateDevice(ctx, device.ID))

	result, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().False(result.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestInvalidateDevice_NotCached() {
	s.Require().NoError(s.repo.InvalidateDevice(context.Background(), model.NewDeviceID()))
}

func (s *DevicesCacheRepositoryTestSuite) TestGetDeviceList_NotCached() {
	result, err := s.repo.GetDeviceList(context.Background(), model.DefaultDeviceFilter())

	s.Require().NoError(err)
	s.Require().False(result.Hit)
	s.Require().Nil(result.Data)
}

func (s *DevicesCacheRepositoryTestSuite) TestSetAndGetDeviceList() {
	ctx := context.Background()
	filter := model.DeviceFilter{Brand: "Apple", Paginate: true, Size: 10}

	page := &model.DevicePage{
		Items: []*model.Device{
			model.NewDevice("iPhone", "Apple", model.StateAvailable),
			model.NewDevice("iPad", "Apple", model.StateInUse),
		},
		Pagination: model.Pagination{Page: 0, Size: 10, TotalItems: 2, TotalPages: 1},
		Filters:    filter,
	}

	s.Require().NoError(s.repo.SetDeviceList(ctx, page, filter, time.Minute))

	result, err := s.repo.GetDeviceList(ctx, filter)
	s.Require().NoError(err)
	s.Require().True(result.Hit)
	s.Require().Len(result.Data.Items, 2)
	s.Require().Equal(page.Pagination, result.Data.Pagination)
	s.Require().Equal("iPhone", result.Data.Items[0].Name)
}

func (s *DevicesCacheRepositoryTestSuite) TestDeviceListKey_DiffersPerFilter() {
	ctx := context.Background()

	appleFilter := model.DeviceFilter{Brand: "Apple"}
	samsungFilter := model.DeviceFilter{Brand: "Samsung"}

	page := &model.DevicePage{
		Items:   []*model.Device{model.NewDevice("iPhone", "Apple", model.StateAvailable)},
		Filters: appleFilter,
	}

	s.Require().NoError(s.repo.SetDeviceList(ctx, page, appleFilter, time.Minute))

	result, err := s.repo.GetDeviceList(ctx, samsungFilter)
	s.Require().NoError(err)
	s.Require().False(result.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestInvalidateAllLists() {
	ctx := context.Background()

	filters := []model.DeviceFilter{
		{Brand: "Apple"},
		{Name: "Phone"},
		{SearchText: "available"},
	}

	for _, filter := range filters {
		page := &model.DevicePage{Items: []*model.Device{}, Filters: filter}
		s.Require().NoError(s.repo.SetDeviceList(ctx, page, filter, time.Minute))
	}

	device := model.NewDevice("Kept", "Brand", model.StateAvailable)
	s.Require().NoError(s.repo.SetDevice(ctx, device, time.Hour))

	s.Require().NoError(s.repo.InvalidateAllLists(ctx))

	for _, filter := range filters {
		result, err := s.repo.GetDeviceList(ctx, filter)
		s.Require().NoError(err)
		s.Require().False(result.Hit)
	}

	// single-device entries survive list invalidation
	result, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().True(result.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestPurgeAll() {
	ctx := context.Background()

	device := model.NewDevice("Gone", "Brand", model.StateAvailable)
	s.Require().NoError(s.repo.SetDevice(ctx, device, time.Hour))

	filter := model.DeviceFilter{Brand: "Apple"}
	page := &model.DevicePage{Items: []*model.Device{}, Filters: filter}
	s.Require().NoError(s.repo.SetDeviceList(ctx, page, filter, time.Minute))

	s.Require().NoError(s.repo.PurgeAll(ctx))

	deviceResult, err := s.repo.GetDevice(ctx, device.ID)
	s.Require().NoError(err)
	s.Require().False(deviceResult.Hit)

	listResult, err := s.repo.GetDeviceList(ctx, filter)
	s.Require().NoError(err)
	s.Require().False(listResult.Hit)
}

func (s *DevicesCacheRepositoryTestSuite) TestIsHealthy() {
	s.Require().True(s.repo.IsHealthy(context.Background()))

	s.miniRedis.Close()

	s.Require().False(s.repo.IsHealthy(context.Background()))
}
