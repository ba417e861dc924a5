package location

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Pincode is a 6-digit postal code served by a City. (city_id, pincode) is unique.
type Pincode struct {
	shared.BaseEntity
	CityID   uuid.UUID
	Code     string
	AreaName string
	Status   shared.Status
}

// NormalizePincode trims the input and checks it is exactly six digits
func NormalizePincode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if !pincodePattern.MatchString(code) {
		return "", shared.NewValidationError("pincode must be exactly 6 digits")
	}
	return code, nil
}

// IsPincode reports whether raw (after trimming) is a 6-digit postal code
func IsPincode(raw string) bool {
	return pincodePattern.MatchString(strings.TrimSpace(raw))
}

// NewPincode creates a new active pincode under the given city
func NewPincode(cityID uuid.UUID, code, areaName string) (*Pincode, error) {
	p := &Pincode{
		BaseEntity: shared.NewBaseEntity(),
		Status:     shared.StatusActive,
	}
	if err := p.SetCity(cityID); err != nil {
		return nil, err
	}
	if err := p.SetCode(code); err != nil {
		return nil, err
	}
	if err := p.SetAreaName(areaName); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCity moves the pincode under another city
func (p *Pincode) SetCity(cityID uuid.UUID) error {
	if cityID == uuid.Nil {
		return shared.NewValidationError("city_id is required")
	}
	p.CityID = cityID
	p.Touch()
	return nil
}

// SetCode changes the postal code
func (p *Pincode) SetCode(code string) error {
	code, err := NormalizePincode(code)
	if err != nil {
		return err
	}
	p.Code = code
	p.Touch()
	return nil
}

// SetAreaName sets the locality served by this pincode
func (p *Pincode) SetAreaName(area string) error {
	area = strings.TrimSpace(area)
	if len(area) > 150 {
		return shared.NewValidationError("area_name cannot exceed 150 characters")
	}
	p.AreaName = area
	p.Touch()
	return nil
}

// SetStatus changes the status
func (p *Pincode) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	p.Status = status
	p.Touch()
	return nil
}
