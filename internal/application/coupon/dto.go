package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/coupon"
)

// CreateCouponRequest represents a request to create a coupon. Dates accept
// RFC 3339 timestamps or plain YYYY-MM-DD; a plain end date covers the
// whole day.
type CreateCouponRequest struct {
	Code              string           `json:"code" binding:"required,min=3,max=32"`
	Description       string           `json:"description" binding:"max=500"`
	DiscountType      string           `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	UsageLimit        int              `json:"usage_limit" binding:"min=0"`
	StartDate         string           `json:"start_date" binding:"required"`
	EndDate           string           `json:"end_date" binding:"required"`
	Status            string           `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateCouponRequest is a partial coupon update
type UpdateCouponRequest struct {
	ID                *uuid.UUID       `json:"id"`
	Code              *string          `json:"code" binding:"omitempty,min=3,max=32"`
	Description       *string          `json:"description" binding:"omitempty,max=500"`
	DiscountType      *string          `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue     *decimal.Decimal `json:"discount_value"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	UsageLimit        *int             `json:"usage_limit" binding:"omitempty,min=0"`
	UsedCount         *int             `json:"used_count" binding:"omitempty,min=0"`
	StartDate         *string          `json:"start_date"`
	EndDate           *string          `json:"end_date"`
	Status            *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CouponListFilter filters the coupon list
type CouponListFilter struct {
	query.ListQuery
}

// ValidateCouponQuery asks what a code would take off an order amount
type ValidateCouponQuery struct {
	Code   string `form:"code" binding:"required"`
	Amount string `form:"amount" binding:"required"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID                uuid.UUID       `json:"id"`
	Code              string          `json:"code"`
	Description       string          `json:"description"`
	DiscountType      string          `json:"discount_type"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	MinOrderAmount    decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount decimal.Decimal `json:"max_discount_amount"`
	UsageLimit        int             `json:"usage_limit"`
	UsedCount         int             `json:"used_count"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToCouponResponse converts a domain Coupon
func ToCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:                c.ID,
		Code:              c.Code,
		Description:       c.Description,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		UsageLimit:        c.UsageLimit,
		UsedCount:         c.UsedCount,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// CouponValidationResponse is the discount a coupon grants on an amount
type CouponValidationResponse struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Amount        decimal.Decimal `json:"amount"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
}
