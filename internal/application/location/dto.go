package location

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/location"
)

// CreateCountryRequest represents a request to create a country
type CreateCountryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	ISOCode   string `json:"iso_code" binding:"omitempty,max=3"`
	PhoneCode string `json:"phone_code" binding:"omitempty,max=5"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateCountryRequest is a partial update; nil fields are left unchanged
type UpdateCountryRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      *string    `json:"name" binding:"omitempty,max=100"`
	ISOCode   *string    `json:"iso_code" binding:"omitempty,max=3"`
	PhoneCode *string    `json:"phone_code" binding:"omitempty,max=5"`
	Status    *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateStateRequest represents a request to create a state
type CreateStateRequest struct {
	CountryID uuid.UUID `json:"country_id" binding:"required"`
	Name      string    `json:"name" binding:"required,max=100"`
	StateCode string    `json:"state_code" binding:"omitempty,max=10"`
	Status    string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateStateRequest is a partial update; nil fields are left unchanged
type UpdateStateRequest struct {
	ID        *uuid.UUID `json:"id"`
	CountryID *uuid.UUID `json:"country_id"`
	Name      *string    `json:"name" binding:"omitempty,max=100"`
	StateCode *string    `json:"state_code" binding:"omitempty,max=10"`
	Status    *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateCityRequest represents a request to create a city
type CreateCityRequest struct {
	StateID uuid.UUID `json:"state_id" binding:"required"`
	Name    string    `json:"name" binding:"required,max=100"`
	Status  string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateCityRequest is a partial update; nil fields are left unchanged
type UpdateCityRequest struct {
	ID      *uuid.UUID `json:"id"`
	StateID *uuid.UUID `json:"state_id"`
	Name    *string    `json:"name" binding:"omitempty,max=100"`
	Status  *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreatePincodeRequest represents a request to create a pincode
type CreatePincodeRequest struct {
	CityID   uuid.UUID `json:"city_id" binding:"required"`
	Pincode  string    `json:"pincode" binding:"required,pincode"`
	AreaName string    `json:"area_name" binding:"omitempty,max=150"`
	Status   string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdatePincodeRequest is a partial update; nil fields are left unchanged
type UpdatePincodeRequest struct {
	ID       *uuid.UUID `json:"id"`
	CityID   *uuid.UUID `json:"city_id"`
	Pincode  *string    `json:"pincode" binding:"omitempty,pincode"`
	AreaName *string    `json:"area_name" binding:"omitempty,max=150"`
	Status   *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CountryListFilter filters the country list
type CountryListFilter struct {
	query.ListQuery
}

// StateListFilter filters the state list
type StateListFilter struct {
	query.ListQuery
	CountryID *uuid.UUID `form:"-"`
}

// CityListFilter filters the city list
type CityListFilter struct {
	query.ListQuery
	StateID *uuid.UUID `form:"-"`
}

// PincodeListFilter filters the pincode list
type PincodeListFilter struct {
	query.ListQuery
	CityID *uuid.UUID `form:"-"`
}

// CountryResponse represents a country in API responses
type CountryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ISOCode   string    `json:"iso_code"`
	PhoneCode string    `json:"phone_code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateResponse represents a state in API responses
type StateResponse struct {
	ID        uuid.UUID `json:"id"`
	CountryID uuid.UUID `json:"country_id"`
	Name      string    `json:"name"`
	StateCode string    `json:"state_code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CityResponse represents a city in API responses
type CityResponse struct {
	ID        uuid.UUID `json:"id"`
	StateID   uuid.UUID `json:"state_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PincodeResponse represents a pincode in API responses
type PincodeResponse struct {
	ID        uuid.UUID `json:"id"`
	CityID    uuid.UUID `json:"city_id"`
	Pincode   string    `json:"pincode"`
	AreaName  string    `json:"area_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResolvedLocation is the chain a pincode resolves to
type ResolvedLocation struct {
	PincodeID   uuid.UUID `json:"pincode_id"`
	Pincode     string    `json:"pincode"`
	AreaName    string    `json:"area_name"`
	CityID      uuid.UUID `json:"city_id"`
	CityName    string    `json:"city_name"`
	StateID     uuid.UUID `json:"state_id"`
	StateName   string    `json:"state_name"`
	CountryID   uuid.UUID `json:"country_id"`
	CountryName string    `json:"country_name"`
}

// ToCountryResponse converts a domain Country to CountryResponse
func ToCountryResponse(c *location.Country) CountryResponse {
	return CountryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ISOCode:   c.ISOCode,
		PhoneCode: c.PhoneCode,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToStateResponse converts a domain State to StateResponse
func ToStateResponse(s *location.State) StateResponse {
	return StateResponse{
		ID:        s.ID,
		CountryID: s.CountryID,
		Name:      s.Name,
		StateCode: s.StateCode,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToCityResponse converts a domain City to CityResponse
func ToCityResponse(c *location.City) CityResponse {
	return CityResponse{
		ID:        c.ID,
		StateID:   c.StateID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToPincodeResponse converts a domain Pincode to PincodeResponse
func ToPincodeResponse(p *location.Pincode) PincodeResponse {
	return PincodeResponse{
		ID:        p.ID,
		CityID:    p.CityID,
		Pincode:   p.Code,
		AreaName:  p.AreaName,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toResponses[E any, R any](items []E, fn func(*E) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
