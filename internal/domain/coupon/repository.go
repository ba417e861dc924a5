package coupon

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CouponRepository defines persistence operations for coupons
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)

	// FindByCode looks a coupon up by its normalized code
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// FindAll lists coupons. Search matches code.
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, int64, error)

	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}
