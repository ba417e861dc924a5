package location

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// State belongs to a Country. (country_id, name) is unique.
type State struct {
	shared.BaseEntity
	CountryID uuid.UUID
	Name      string
	StateCode string
	Status    shared.Status
}

// NewState creates a new active state under the given country
func NewState(countryID uuid.UUID, name, stateCode string) (*State, error) {
	s := &State{
		BaseEntity: shared.NewBaseEntity(),
		Status:     shared.StatusActive,
	}
	if err := s.SetCountry(countryID); err != nil {
		return nil, err
	}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if err := s.SetStateCode(stateCode); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCountry moves the state under another country
func (s *State) SetCountry(countryID uuid.UUID) error {
	if countryID == uuid.Nil {
		return shared.NewValidationError("country_id is required")
	}
	s.CountryID = countryID
	s.Touch()
	return nil
}

// SetName renames the state
func (s *State) SetName(name string) error {
	name, err := validateName("State", name)
	if err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// SetStateCode sets the short code (e.g. "KA"). Blank clears it.
func (s *State) SetStateCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 10 {
		return shared.NewValidationError("state_code cannot exceed 10 characters")
	}
	s.StateCode = code
	s.Touch()
	return nil
}

// SetStatus changes the status
func (s *State) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	s.Status = status
	s.Touch()
	return nil
}
