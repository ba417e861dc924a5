// Package location models the Country → State → City → Pincode hierarchy
// used for address entry and delivery serviceability.
package location

import (
	"regexp"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

var (
	isoCodePattern   = regexp.MustCompile(`^[A-Z]{2,3}$`)
	phoneCodePattern = regexp.MustCompile(`^\+?[0-9]{1,4}$`)
)

// Country is the root of the location hierarchy
type Country struct {
	shared.BaseEntity
	Name      string
	ISOCode   string
	PhoneCode string
	Status    shared.Status
}

// NewCountry creates a new active country
func NewCountry(name, isoCode, phoneCode string) (*Country, error) {
	c := &Country{
		BaseEntity: shared.NewBaseEntity(),
		Status:     shared.StatusActive,
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetISOCode(isoCode); err != nil {
		return nil, err
	}
	if err := c.SetPhoneCode(phoneCode); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName renames the country
func (c *Country) SetName(name string) error {
	name, err := validateName("Country", name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetISOCode sets the ISO 3166 alpha-2/alpha-3 code. Blank clears it.
func (c *Country) SetISOCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && !isoCodePattern.MatchString(code) {
		return shared.NewValidationError("iso_code must be 2 or 3 letters")
	}
	c.ISOCode = code
	c.Touch()
	return nil
}

// SetPhoneCode sets the international dialing prefix. Blank clears it.
func (c *Country) SetPhoneCode(code string) error {
	code = strings.TrimSpace(code)
	if code != "" && !phoneCodePattern.MatchString(code) {
		return shared.NewValidationError("phone_code must be 1-4 digits with an optional leading '+'")
	}
	c.PhoneCode = code
	c.Touch()
	return nil
}

// SetStatus changes the status
func (c *Country) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	c.Status = status
	c.Touch()
	return nil
}

func validateName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("%s name is required", entity)
	}
	if len(name) > 100 {
		return "", shared.NewValidationError("%s name cannot exceed 100 characters", entity)
	}
	return name, nil
}
