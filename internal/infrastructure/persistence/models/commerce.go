package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
)

// CouponModel is the persistence model for the Coupon entity
type CouponModel struct {
	BaseModel
	Code              string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description       string              `gorm:"type:varchar(255)"`
	DiscountType      coupon.DiscountType `gorm:"type:varchar(20);not null"`
	DiscountValue     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	MinOrderAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	MaxDiscountAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	UsageLimit        int                 `gorm:"not null;default:0"`
	UsedCount         int                 `gorm:"not null;default:0"`
	StartDate         time.Time           `gorm:"not null"`
	EndDate           time.Time           `gorm:"not null"`
	Status            shared.Status       `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon
func (m *CouponModel) ToDomain() *coupon.Coupon {
	return &coupon.Coupon{
		BaseEntity:        m.BaseModel.ToDomain(),
		Code:              m.Code,
		Description:       m.Description,
		DiscountType:      m.DiscountType,
		DiscountValue:     m.DiscountValue,
		MinOrderAmount:    m.MinOrderAmount,
		MaxDiscountAmount: m.MaxDiscountAmount,
		UsageLimit:        m.UsageLimit,
		UsedCount:         m.UsedCount,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Coupon
func (m *CouponModel) FromDomain(c *coupon.Coupon) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Description = c.Description
	m.DiscountType = c.DiscountType
	m.DiscountValue = c.DiscountValue
	m.MinOrderAmount = c.MinOrderAmount
	m.MaxDiscountAmount = c.MaxDiscountAmount
	m.UsageLimit = c.UsageLimit
	m.UsedCount = c.UsedCount
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Status = c.Status
}

// PaymentGatewayModel is the persistence model for a configured payment gateway
type PaymentGatewayModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	AppID     string `gorm:"column:app_id;type:varchar(255)"`
	SecretKey string `gorm:"type:varchar(500)"`
	IsActive  bool   `gorm:"not null;default:false"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PaymentGatewayModel) TableName() string {
	return "payment_gateways"
}

// ToDomain converts the persistence model to a domain PaymentGateway
func (m *PaymentGatewayModel) ToDomain() *payment.PaymentGateway {
	return &payment.PaymentGateway{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		AppID:      m.AppID,
		SecretKey:  m.SecretKey,
		IsActive:   m.IsActive,
		SortOrder:  m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain PaymentGateway
func (m *PaymentGatewayModel) FromDomain(g *payment.PaymentGateway) {
	m.FromDomainBaseEntity(g.BaseEntity)
	m.Name = g.Name
	m.AppID = g.AppID
	m.SecretKey = g.SecretKey
	m.IsActive = g.IsActive
	m.SortOrder = g.SortOrder
}
