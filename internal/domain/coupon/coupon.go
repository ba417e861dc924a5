// Package coupon models discount coupons redeemable at checkout.
package coupon

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

var hundred = decimal.NewFromInt(100)

// DiscountType is how a coupon's value is applied
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid reports whether the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Coupon is a discount code
type Coupon struct {
	shared.BaseEntity
	Code              string
	Description       string
	DiscountType      DiscountType
	DiscountValue     decimal.Decimal
	MinOrderAmount    decimal.Decimal
	MaxDiscountAmount decimal.Decimal // zero means uncapped
	UsageLimit        int             // zero means unlimited
	UsedCount         int
	StartDate         time.Time
	EndDate           time.Time
	Status            shared.Status
}

// NormalizeCode trims and upper-cases a coupon code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCoupon creates an active coupon
func NewCoupon(code string, discountType DiscountType, value decimal.Decimal, start, end time.Time) (*Coupon, error) {
	c := &Coupon{
		BaseEntity:        shared.NewBaseEntity(),
		MinOrderAmount:    decimal.Zero,
		MaxDiscountAmount: decimal.Zero,
		Status:            shared.StatusActive,
	}
	if err := c.SetCode(code); err != nil {
		return nil, err
	}
	if err := c.SetDiscount(discountType, value); err != nil {
		return nil, err
	}
	if err := c.SetValidity(start, end); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCode sets the code, stored upper-case
func (c *Coupon) SetCode(code string) error {
	normalized := NormalizeCode(code)
	if !codePattern.MatchString(normalized) {
		return shared.NewValidationError("code must be 3-32 characters of letters, digits, '-' or '_'")
	}
	c.Code = normalized
	c.Touch()
	return nil
}

// SetDescription sets the description
func (c *Coupon) SetDescription(desc string) {
	c.Description = strings.TrimSpace(desc)
	c.Touch()
}

// SetDiscount sets the discount type and value
func (c *Coupon) SetDiscount(discountType DiscountType, value decimal.Decimal) error {
	if !discountType.IsValid() {
		return shared.NewValidationError("discount_type must be 'percentage' or 'fixed'")
	}
	if !value.IsPositive() {
		return shared.NewValidationError("discount_value must be greater than 0")
	}
	if discountType == DiscountPercentage && value.GreaterThan(hundred) {
		return shared.NewValidationError("percentage discount_value cannot exceed 100")
	}
	c.DiscountType = discountType
	c.DiscountValue = value
	c.Touch()
	return nil
}

// SetLimits sets the order minimum, discount cap and usage limit
func (c *Coupon) SetLimits(minOrder, maxDiscount decimal.Decimal, usageLimit int) error {
	if minOrder.IsNegative() {
		return shared.NewValidationError("min_order_amount cannot be negative")
	}
	if maxDiscount.IsNegative() {
		return shared.NewValidationError("max_discount_amount cannot be negative")
	}
	if usageLimit < 0 {
		return shared.NewValidationError("usage_limit cannot be negative")
	}
	c.MinOrderAmount = minOrder
	c.MaxDiscountAmount = maxDiscount
	c.UsageLimit = usageLimit
	c.Touch()
	return nil
}

// SetUsedCount records how many times the coupon was redeemed
func (c *Coupon) SetUsedCount(n int) error {
	if n < 0 {
		return shared.NewValidationError("used_count cannot be negative")
	}
	c.UsedCount = n
	c.Touch()
	return nil
}

// SetValidity sets the redemption window. start must not be after end.
func (c *Coupon) SetValidity(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewValidationError("start_date and end_date are required")
	}
	if start.After(end) {
		return shared.NewValidationError("start_date must be on or before end_date")
	}
	c.StartDate = start
	c.EndDate = end
	c.Touch()
	return nil
}

// SetStatus changes the status
func (c *Coupon) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	c.Status = status
	c.Touch()
	return nil
}

// CheckRedeemable returns a validation error describing why the coupon
// cannot be applied to an order of amount at now.
func (c *Coupon) CheckRedeemable(amount decimal.Decimal, now time.Time) error {
	if c.Status != shared.StatusActive {
		return shared.NewValidationError("coupon %s is not active", c.Code)
	}
	if now.Before(c.StartDate) {
		return shared.NewValidationError("coupon %s is not yet valid", c.Code)
	}
	if now.After(c.EndDate) {
		return shared.NewValidationError("coupon %s has expired", c.Code)
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return shared.NewValidationError("coupon %s has reached its usage limit", c.Code)
	}
	if amount.LessThan(c.MinOrderAmount) {
		return shared.NewValidationError("order amount must be at least %s to use coupon %s",
			c.MinOrderAmount.StringFixed(2), c.Code)
	}
	return nil
}

// Discount computes the discount for an order of amount at now
func (c *Coupon) Discount(amount decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := c.CheckRedeemable(amount, now); err != nil {
		return decimal.Zero, err
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = amount.Mul(c.DiscountValue).Div(hundred).Round(2)
		if c.MaxDiscountAmount.IsPositive() && discount.GreaterThan(c.MaxDiscountAmount) {
			discount = c.MaxDiscountAmount
		}
	default:
		discount = c.DiscountValue
	}
	if discount.GreaterThan(amount) {
		discount = amount
	}
	return discount, nil
}
