package location

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// City belongs to a State
type City struct {
	shared.BaseEntity
	StateID uuid.UUID
	Name    string
	Status  shared.Status
}

// NewCity creates a new active city under the given state
func NewCity(stateID uuid.UUID, name string) (*City, error) {
	c := &City{
		BaseEntity: shared.NewBaseEntity(),
		Status:     shared.StatusActive,
	}
	if err := c.SetState(stateID); err != nil {
		return nil, err
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	return c, nil
}

// SetState moves the city under another state
func (c *City) SetState(stateID uuid.UUID) error {
	if stateID == uuid.Nil {
		return shared.NewValidationError("state_id is required")
	}
	c.StateID = stateID
	c.Touch()
	return nil
}

// SetName renames the city
func (c *City) SetName(name string) error {
	name, err := validateName("City", name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetStatus changes the status
func (c *City) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	c.Status = status
	c.Touch()
	return nil
}
