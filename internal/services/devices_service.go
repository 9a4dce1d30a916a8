package services

import (
	"context"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
)

type DevicesService struct {
	repo ports.DeviceRepository
}

func NewDevicesService(repo ports.DeviceRepository) *DevicesService {
	return &DevicesService{repo: repo}
}

func (s *DevicesService) CreateDevice(ctx context.Context, name, brand string, state model.State) (*model.Device, error) {
	device := model.NewDevice(name, brand, state)

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DevicesService) ListDevices(ctx context.Context, filter model.DeviceFilter) (*model.DevicePage, error) {
	return s.repo.FindByFilter(ctx, filter), nil
}

func (s *DevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, name, brand string, state model.State) (*model.Device, error) {
	return s.mutate(ctx, id, model.FullChangeProposal(name, brand, state))
}

func (s *DevicesService) PatchDevice(ctx context.Context, id model.DeviceID, proposal model.ChangeProposal) (*model.Device, error) {
	return s.mutate(ctx, id, proposal)
}

func (s *DevicesService) mutate(ctx context.Context, id model.DeviceID, proposal model.ChangeProposal) (*model.Device, error) {
	device, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if proposal.IsEmpty() {
		return device, nil
	}

	if violations := device.ValidateChanges(proposal); violations.HasErrors() {
		return nil, violations
	}

	device.Apply(proposal)

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	device, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if violations := device.ValidateDelete(); violations.HasErrors() {
		return violations
	}

	return s.repo.Delete(ctx, id)
}
