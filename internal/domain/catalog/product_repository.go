package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindByIDs finds all products whose IDs are in ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll lists products with pagination.
	// Filters: category_id, min_price, max_price. Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// ExistsBySlug checks slug uniqueness, ignoring excludeID when set
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// ExistsBySKU checks sku uniqueness, ignoring excludeID when set
	ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error)

	// CountByCategory counts the products in a category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductDetailRepository persists the single detail row of a product
type ProductDetailRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*ProductDetail, error)
	Save(ctx context.Context, detail *ProductDetail) error
}

// ProductFAQRepository persists product FAQs
type ProductFAQRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductFAQ, error)

	// FindAll lists FAQs. Filters: product_id. Ordered by sort_order.
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductFAQ, int64, error)

	Save(ctx context.Context, faq *ProductFAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductReviewRepository persists product reviews
type ProductReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductReview, error)

	// FindAll lists reviews. Filters: product_id. Search matches comment.
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductReview, int64, error)

	// Summary aggregates active reviews of a product
	Summary(ctx context.Context, productID uuid.UUID) (RatingSummary, error)

	Save(ctx context.Context, review *ProductReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}
