package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/address"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressModel is the persistence model for the Address entity
type AddressModel struct {
	BaseModel
	UserID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	FullName     string              `gorm:"type:varchar(100);not null"`
	Mobile       string              `gorm:"type:varchar(16);not null"`
	AddressLine1 string              `gorm:"column:address_line_1;type:varchar(255);not null"`
	AddressLine2 string              `gorm:"column:address_line_2;type:varchar(255)"`
	Landmark     string              `gorm:"type:varchar(150)"`
	CountryID    uuid.UUID           `gorm:"type:uuid;not null"`
	StateID      uuid.UUID           `gorm:"type:uuid;not null"`
	CityID       uuid.UUID           `gorm:"type:uuid;not null"`
	PincodeID    uuid.UUID           `gorm:"type:uuid;not null"`
	PostalCode   string              `gorm:"type:varchar(6);not null"`
	AddressType  address.AddressType `gorm:"type:varchar(20);not null;default:'home'"`
	IsDefault    bool                `gorm:"not null;default:false"`
	Status       shared.Status       `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address
func (m *AddressModel) ToDomain() *address.Address {
	return &address.Address{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		FullName:     m.FullName,
		Mobile:       m.Mobile,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		Landmark:     m.Landmark,
		Location: address.LocationRef{
			CountryID: m.CountryID,
			StateID:   m.StateID,
			CityID:    m.CityID,
			PincodeID: m.PincodeID,
		},
		PostalCode:  m.PostalCode,
		AddressType: m.AddressType,
		IsDefault:   m.IsDefault,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Address
func (m *AddressModel) FromDomain(a *address.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.FullName = a.FullName
	m.Mobile = a.Mobile
	m.AddressLine1 = a.AddressLine1
	m.AddressLine2 = a.AddressLine2
	m.Landmark = a.Landmark
	m.CountryID = a.Location.CountryID
	m.StateID = a.Location.StateID
	m.CityID = a.Location.CityID
	m.PincodeID = a.Location.PincodeID
	m.PostalCode = a.PostalCode
	m.AddressType = a.AddressType
	m.IsDefault = a.IsDefault
	m.Status = a.Status
}

// AddressModelFromDomain creates a new persistence model from a domain Address
func AddressModelFromDomain(a *address.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
