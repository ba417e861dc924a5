package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductReview is a customer rating of a product. Only active reviews are
// shown on the storefront; admins moderate by toggling status.
type ProductReview struct {
	shared.BaseEntity
	ProductID    uuid.UUID
	UserID       *uuid.UUID
	ReviewerName string
	Rating       int
	Title        string
	Comment      string
	Status       shared.Status
}

// RatingSummary aggregates the active reviews of a product
type RatingSummary struct {
	AverageRating float64
	ReviewCount   int64
}

// NewProductReview creates a review. New reviews start inactive until moderated.
func NewProductReview(productID uuid.UUID, userID *uuid.UUID, reviewerName string, rating int, title, comment string) (*ProductReview, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id is required")
	}
	reviewerName = strings.TrimSpace(reviewerName)
	if reviewerName == "" {
		return nil, shared.NewValidationError("reviewer_name is required")
	}
	if len(reviewerName) > 100 {
		return nil, shared.NewValidationError("reviewer_name cannot exceed 100 characters")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if len(title) > 200 {
		return nil, shared.NewValidationError("title cannot exceed 200 characters")
	}
	return &ProductReview{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		UserID:       userID,
		ReviewerName: reviewerName,
		Rating:       rating,
		Title:        title,
		Comment:      strings.TrimSpace(comment),
		Status:       shared.StatusInactive,
	}, nil
}

// SetStatus publishes (active) or hides (inactive) the review
func (r *ProductReview) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	r.Status = status
	r.Touch()
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}
