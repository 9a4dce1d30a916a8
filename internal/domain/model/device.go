package model

import (
	"time"

	"github.com/google/uuid"
)

type DeviceID struct {
	uuid.UUID
}

func NewDeviceID() DeviceID {
	return DeviceID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseDeviceID(s string) (DeviceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DeviceID{}, err
	}

	return DeviceID{UUID: id}, nil
}

func (d DeviceID) String() string {
	return d.UUID.String()
}

func (d DeviceID) IsZero() bool {
	return d.UUID == uuid.Nil
}

type Device struct {
	ID        DeviceID
	Name      string
	Brand     string
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewDevice(name, brand string, state State) *Device {
	now := time.Now().UTC()

	if state == "" {
		state = StateAvailable
	}

	return &Device{
		ID:        NewDeviceID(),
		Name:      name,
		Brand:     brand,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChangeProposal is a sparse set of field changes. A nil field means
// "leave as-is"; full updates set every field, partial updates only the
// ones supplied by the caller.
type ChangeProposal struct {
	Name  *string
	Brand *string
	State *State
}

// FullChangeProposal builds a proposal with every mutable field present,
// as used by full (PUT-style) updates.
func FullChangeProposal(name, brand string, state State) ChangeProposal {
	return ChangeProposal{
		Name:  &name,
		Brand: &brand,
		State: &state,
	}
}

func (p ChangeProposal) IsEmpty() bool {
	return p.Name == nil && p.Brand == nil && p.State == nil
}

// ValidateChanges checks the proposal against the device's lifecycle
// state. Restrictions only apply while the device is in use: name and
// brand are then frozen, state transitions stay free. Every violation is
// collected before returning, never just the first one.
func (d *Device) ValidateChanges(proposal ChangeProposal) *ValidationErrors {
	violations := NewValidationErrors()

	if d.State != StateInUse {
		return violations
	}

	if proposal.Name != nil && *proposal.Name != d.Name {
		violations.Add("name", "Device name cannot be changed while in use.", "DEVICE_IN_USE")
	}

	if proposal.Brand != nil && *proposal.Brand != d.Brand {
		violations.Add("brand", "Device brand cannot be changed while in use.", "DEVICE_IN_USE")
	}

	return violations
}

// ValidateDelete is the degenerate form of the mutation guard: an in-use
// device may not be deleted.
func (d *Device) ValidateDelete() *ValidationErrors {
	violations := NewValidationErrors()

	if d.State == StateInUse {
		violations.Add("state", "Device in use cannot be deleted.", "DEVICE_IN_USE")
	}

	return violations
}

// Apply merges the proposal into the device. Callers must validate the
// proposal first; Apply performs no checks of its own. CreatedAt is never
// touched.
func (d *Device) Apply(proposal ChangeProposal) {
	if proposal.Name != nil {
		d.Name = *proposal.Name
	}

	if proposal.Brand != nil {
		d.Brand = *proposal.Brand
	}

	if proposal.State != nil {
		d.State = *proposal.State
	}

	d.UpdatedAt = time.Now().UTC()
}
