package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll lists categories. Filters: parent_id. Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, int64, error)

	// ExistsBySlug checks slug uniqueness, ignoring excludeID when set
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// HasChildren reports whether any category is nested under id
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
