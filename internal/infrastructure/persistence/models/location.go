package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
)

// CountryModel is the persistence model for the Country entity.
// Names are not unique.
type CountryModel struct {
	BaseModel
	Name      string        `gorm:"type:varchar(100);not null;index"`
	ISOCode   string        `gorm:"column:iso_code;type:varchar(3)"`
	PhoneCode string        `gorm:"type:varchar(10)"`
	Status    shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// ToDomain converts the persistence model to a domain Country
func (m *CountryModel) ToDomain() *location.Country {
	return &location.Country{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		ISOCode:    m.ISOCode,
		PhoneCode:  m.PhoneCode,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Country
func (m *CountryModel) FromDomain(c *location.Country) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.ISOCode = c.ISOCode
	m.PhoneCode = c.PhoneCode
	m.Status = c.Status
}

// CountryModelFromDomain creates a new persistence model from a domain Country
func CountryModelFromDomain(c *location.Country) *CountryModel {
	m := &CountryModel{}
	m.FromDomain(c)
	return m
}

// StateModel is the persistence model for the State entity
type StateModel struct {
	BaseModel
	CountryID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_states_country_name,priority:1"`
	Name      string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_states_country_name,priority:2"`
	StateCode string        `gorm:"type:varchar(10)"`
	Status    shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (StateModel) TableName() string {
	return "states"
}

// ToDomain converts the persistence model to a domain State
func (m *StateModel) ToDomain() *location.State {
	return &location.State{
		BaseEntity: m.BaseModel.ToDomain(),
		CountryID:  m.CountryID,
		Name:       m.Name,
		StateCode:  m.StateCode,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain State
func (m *StateModel) FromDomain(s *location.State) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CountryID = s.CountryID
	m.Name = s.Name
	m.StateCode = s.StateCode
	m.Status = s.Status
}

// StateModelFromDomain creates a new persistence model from a domain State
func StateModelFromDomain(s *location.State) *StateModel {
	m := &StateModel{}
	m.FromDomain(s)
	return m
}

// CityModel is the persistence model for the City entity
type CityModel struct {
	BaseModel
	StateID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name    string        `gorm:"type:varchar(100);not null"`
	Status  shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}

// ToDomain converts the persistence model to a domain City
func (m *CityModel) ToDomain() *location.City {
	return &location.City{
		BaseEntity: m.BaseModel.ToDomain(),
		StateID:    m.StateID,
		Name:       m.Name,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain City
func (m *CityModel) FromDomain(c *location.City) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.StateID = c.StateID
	m.Name = c.Name
	m.Status = c.Status
}

// CityModelFromDomain creates a new persistence model from a domain City
func CityModelFromDomain(c *location.City) *CityModel {
	m := &CityModel{}
	m.FromDomain(c)
	return m
}

// PincodeModel is the persistence model for the Pincode entity
type PincodeModel struct {
	BaseModel
	CityID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_pincodes_city_pincode,priority:1"`
	Pincode  string        `gorm:"type:varchar(6);not null;index;uniqueIndex:idx_pincodes_city_pincode,priority:2"`
	AreaName string        `gorm:"type:varchar(150)"`
	Status   shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (PincodeModel) TableName() string {
	return "pincodes"
}

// ToDomain converts the persistence model to a domain Pincode
func (m *PincodeModel) ToDomain() *location.Pincode {
	return &location.Pincode{
		BaseEntity: m.BaseModel.ToDomain(),
		CityID:     m.CityID,
		Code:       m.Pincode,
		AreaName:   m.AreaName,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Pincode
func (m *PincodeModel) FromDomain(p *location.Pincode) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CityID = p.CityID
	m.Pincode = p.Code
	m.AreaName = p.AreaName
	m.Status = p.Status
}

// PincodeModelFromDomain creates a new persistence model from a domain Pincode
func PincodeModelFromDomain(p *location.Pincode) *PincodeModel {
	m := &PincodeModel{}
	m.FromDomain(p)
	return m
}
