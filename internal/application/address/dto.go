package address

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/address"
)

// CreateAddressRequest represents a request to create an address. Location
// ids are optional: when omitted they are filled from postal_code.
type CreateAddressRequest struct {
	UserID       *uuid.UUID `json:"user_id"`
	FullName     string     `json:"full_name" binding:"required,max=100"`
	Mobile       string     `json:"mobile" binding:"required,max=20"`
	AddressLine1 string     `json:"address_line_1" binding:"required,max=255"`
	AddressLine2 string     `json:"address_line_2" binding:"max=255"`
	Landmark     string     `json:"landmark" binding:"max=255"`
	CountryID    *uuid.UUID `json:"country_id"`
	StateID      *uuid.UUID `json:"state_id"`
	CityID       *uuid.UUID `json:"city_id"`
	PincodeID    *uuid.UUID `json:"pincode_id"`
	PostalCode   string     `json:"postal_code" binding:"required,pincode"`
	AddressType  string     `json:"address_type" binding:"omitempty,oneof=home work other"`
	IsDefault    bool       `json:"is_default"`
	Status       string     `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateAddressRequest is a partial update; nil fields are left unchanged
type UpdateAddressRequest struct {
	ID           *uuid.UUID `json:"id"`
	FullName     *string    `json:"full_name" binding:"omitempty,max=100"`
	Mobile       *string    `json:"mobile" binding:"omitempty,max=20"`
	AddressLine1 *string    `json:"address_line_1" binding:"omitempty,max=255"`
	AddressLine2 *string    `json:"address_line_2" binding:"omitempty,max=255"`
	Landmark     *string    `json:"landmark" binding:"omitempty,max=255"`
	CountryID    *uuid.UUID `json:"country_id"`
	StateID      *uuid.UUID `json:"state_id"`
	CityID       *uuid.UUID `json:"city_id"`
	PincodeID    *uuid.UUID `json:"pincode_id"`
	PostalCode   *string    `json:"postal_code" binding:"omitempty,pincode"`
	AddressType  *string    `json:"address_type" binding:"omitempty,oneof=home work other"`
	IsDefault    *bool      `json:"is_default"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// touchesLocation reports whether any location field is present
func (r UpdateAddressRequest) touchesLocation() bool {
	return r.CountryID != nil || r.StateID != nil || r.CityID != nil || r.PincodeID != nil || r.PostalCode != nil
}

// AddressListFilter filters the address list
type AddressListFilter struct {
	query.ListQuery
	UserID *uuid.UUID `form:"-"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	Mobile       string    `json:"mobile"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 string    `json:"address_line_2"`
	Landmark     string    `json:"landmark"`
	CountryID    uuid.UUID `json:"country_id"`
	StateID      uuid.UUID `json:"state_id"`
	CityID       uuid.UUID `json:"city_id"`
	PincodeID    uuid.UUID `json:"pincode_id"`
	PostalCode   string    `json:"postal_code"`
	AddressType  string    `json:"address_type"`
	IsDefault    bool      `json:"is_default"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToAddressResponse converts a domain Address to AddressResponse
func ToAddressResponse(a *address.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		FullName:     a.FullName,
		Mobile:       a.Mobile,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		Landmark:     a.Landmark,
		CountryID:    a.Location.CountryID,
		StateID:      a.Location.StateID,
		CityID:       a.Location.CityID,
		PincodeID:    a.Location.PincodeID,
		PostalCode:   a.PostalCode,
		AddressType:  string(a.AddressType),
		IsDefault:    a.IsDefault,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(items []address.Address) []AddressResponse {
	out := make([]AddressResponse, len(items))
	for i := range items {
		out[i] = ToAddressResponse(&items[i])
	}
	return out
}
