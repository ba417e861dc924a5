// Package address models customer delivery addresses.
package address

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// AddressType labels an address for the customer
type AddressType string

const (
	TypeHome  AddressType = "home"
	TypeWork  AddressType = "work"
	TypeOther AddressType = "other"
)

// LocationRef is the resolved location chain an address points at
type LocationRef struct {
	CountryID uuid.UUID
	StateID   uuid.UUID
	CityID    uuid.UUID
	PincodeID uuid.UUID
}

// Address is a delivery address owned by a user. At most one address per
// user carries IsDefault.
type Address struct {
	shared.BaseEntity
	UserID       uuid.UUID
	FullName     string
	Mobile       string
	AddressLine1 string
	AddressLine2 string
	Landmark     string
	Location     LocationRef
	PostalCode   string
	AddressType  AddressType
	IsDefault    bool
	Status       shared.Status
}

// Contact holds the recipient fields of an address
type Contact struct {
	FullName     string
	Mobile       string
	AddressLine1 string
	AddressLine2 string
	Landmark     string
}

// NewAddress creates a new active, non-default address
func NewAddress(userID uuid.UUID, contact Contact, postalCode string, loc LocationRef) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id is required")
	}
	a := &Address{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		AddressType: TypeHome,
		Status:      shared.StatusActive,
	}
	if err := a.SetContact(contact); err != nil {
		return nil, err
	}
	if err := a.SetLocation(postalCode, loc); err != nil {
		return nil, err
	}
	return a, nil
}

// SetContact replaces the recipient fields
func (a *Address) SetContact(c Contact) error {
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		return shared.NewValidationError("full_name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("full_name cannot exceed 100 characters")
	}
	mobile := strings.ReplaceAll(strings.TrimSpace(c.Mobile), " ", "")
	if !mobilePattern.MatchString(mobile) {
		return shared.NewValidationError("mobile must be 10-15 digits with an optional leading '+'")
	}
	line1 := strings.TrimSpace(c.AddressLine1)
	if line1 == "" {
		return shared.NewValidationError("address_line_1 is required")
	}
	if len(line1) > 255 || len(c.AddressLine2) > 255 {
		return shared.NewValidationError("address lines cannot exceed 255 characters")
	}

	a.FullName = name
	a.Mobile = mobile
	a.AddressLine1 = line1
	a.AddressLine2 = strings.TrimSpace(c.AddressLine2)
	a.Landmark = strings.TrimSpace(c.Landmark)
	a.Touch()
	return nil
}

// Contact returns the recipient fields
func (a *Address) Contact() Contact {
	return Contact{
		FullName:     a.FullName,
		Mobile:       a.Mobile,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		Landmark:     a.Landmark,
	}
}

// SetLocation points the address at a resolved location chain
func (a *Address) SetLocation(postalCode string, loc LocationRef) error {
	code, err := location.NormalizePincode(postalCode)
	if err != nil {
		return shared.NewValidationError("postal_code must be exactly 6 digits")
	}
	if loc.CountryID == uuid.Nil || loc.StateID == uuid.Nil || loc.CityID == uuid.Nil || loc.PincodeID == uuid.Nil {
		return shared.NewValidationError("country_id, state_id, city_id and pincode_id are required")
	}
	a.PostalCode = code
	a.Location = loc
	a.Touch()
	return nil
}

// SetAddressType labels the address
func (a *Address) SetAddressType(t AddressType) error {
	switch t {
	case TypeHome, TypeWork, TypeOther:
	default:
		return shared.NewValidationError("address_type must be one of: home, work, other")
	}
	a.AddressType = t
	a.Touch()
	return nil
}

// SetStatus changes the status
func (a *Address) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	a.Status = status
	a.Touch()
	return nil
}

// MarkDefault flags this address as the user's default
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.Touch()
}

// BelongsTo reports whether the address is owned by userID
func (a *Address) BelongsTo(userID uuid.UUID) bool {
	return a.UserID == userID
}
