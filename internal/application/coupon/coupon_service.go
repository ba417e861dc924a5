package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CouponService handles coupon administration and redemption checks
type CouponService struct {
	couponRepo coupon.CouponRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo coupon.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{couponRepo: couponRepo, logger: logger, now: time.Now}
}

// Create creates a new coupon
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	start, err := parseDate("start_date", req.StartDate, false)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate, true)
	if err != nil {
		return nil, err
	}

	c, err := coupon.NewCoupon(req.Code, coupon.DiscountType(req.DiscountType), req.DiscountValue, start, end)
	if err != nil {
		return nil, err
	}
	c.SetDescription(req.Description)
	if err := c.SetLimits(orZero(req.MinOrderAmount), orZero(req.MaxDiscountAmount), req.UsageLimit); err != nil {
		return nil, err
	}
	if req.Status != "" {
		status, err := shared.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := c.SetStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.ensureCodeFree(ctx, c.Code, nil); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Coupon created", zap.String("code", c.Code), zap.String("discount_type", string(c.DiscountType)))
	resp := ToCouponResponse(c)
	return &resp, nil
}

// GetByID retrieves a coupon by ID
func (s *CouponService) GetByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCouponResponse(c)
	return &resp, nil
}

// List lists coupons
func (s *CouponService) List(ctx context.Context, filter CouponListFilter) (shared.Paginated[CouponResponse], error) {
	f := filter.Filter()
	f.Search = coupon.NormalizeCode(f.Search)
	coupons, total, err := s.couponRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[CouponResponse]{}, err
	}
	items := make([]CouponResponse, len(coupons))
	for i := range coupons {
		items[i] = ToCouponResponse(&coupons[i])
	}
	return shared.NewPaginated(items, total, f), nil
}

// Update applies the fields present in req
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req UpdateCouponRequest) (*CouponResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		if err := c.SetCode(*req.Code); err != nil {
			return nil, err
		}
		if err := s.ensureCodeFree(ctx, c.Code, &c.ID); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		c.SetDescription(*req.Description)
	}
	if req.DiscountType != nil || req.DiscountValue != nil {
		discountType, value := c.DiscountType, c.DiscountValue
		if req.DiscountType != nil {
			discountType = coupon.DiscountType(*req.DiscountType)
		}
		if req.DiscountValue != nil {
			value = *req.DiscountValue
		}
		if err := c.SetDiscount(discountType, value); err != nil {
			return nil, err
		}
	}
	if req.MinOrderAmount != nil || req.MaxDiscountAmount != nil || req.UsageLimit != nil {
		minOrder, maxDiscount, limit := c.MinOrderAmount, c.MaxDiscountAmount, c.UsageLimit
		if req.MinOrderAmount != nil {
			minOrder = *req.MinOrderAmount
		}
		if req.MaxDiscountAmount != nil {
			maxDiscount = *req.MaxDiscountAmount
		}
		if req.UsageLimit != nil {
			limit = *req.UsageLimit
		}
		if err := c.SetLimits(minOrder, maxDiscount, limit); err != nil {
			return nil, err
		}
	}
	if req.UsedCount != nil {
		if err := c.SetUsedCount(*req.UsedCount); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil || req.EndDate != nil {
		start, end := c.StartDate, c.EndDate
		if req.StartDate != nil {
			if start, err = parseDate("start_date", *req.StartDate, false); err != nil {
				return nil, err
			}
		}
		if req.EndDate != nil {
			if end, err = parseDate("end_date", *req.EndDate, true); err != nil {
				return nil, err
			}
		}
		if err := c.SetValidity(start, end); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status, err := shared.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if err := c.SetStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCouponResponse(c)
	return &resp, nil
}

// Delete deletes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.couponRepo.Delete(ctx, id)
}

// Validate reports the discount code would grant on an order of amount.
// An unusable coupon yields a validation error naming the reason.
func (s *CouponService) Validate(ctx context.Context, q ValidateCouponQuery) (*CouponValidationResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(q.Amount))
	if err != nil || amount.IsNegative() {
		return nil, shared.NewValidationError("amount must be a non-negative number")
	}
	c, discount, err := s.Apply(ctx, q.Code, amount)
	if err != nil {
		return nil, err
	}
	return &CouponValidationResponse{
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		Amount:        amount,
		Discount:      discount,
		FinalAmount:   amount.Sub(discount),
	}, nil
}

// Apply looks up code and computes its discount on amount
func (s *CouponService) Apply(ctx context.Context, code string, amount decimal.Decimal) (*coupon.Coupon, decimal.Decimal, error) {
	normalized := coupon.NormalizeCode(code)
	if normalized == "" {
		return nil, decimal.Zero, shared.NewValidationError("coupon code is required")
	}
	c, err := s.couponRepo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, decimal.Zero, shared.NewValidationError("coupon %s is not valid", normalized)
		}
		return nil, decimal.Zero, err
	}
	discount, err := c.Discount(amount, s.now())
	if err != nil {
		return nil, decimal.Zero, err
	}
	return c, discount, nil
}

func (s *CouponService) find(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Coupon")
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) ensureCodeFree(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.couponRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Coupon with code '%s' already exists", code)
	}
	return nil
}

// parseDate accepts RFC 3339 or YYYY-MM-DD. A plain end date is moved to
// the last instant of that day.
func parseDate(field, raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, shared.NewValidationError("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
