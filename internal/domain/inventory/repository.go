package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// InventoryRepository defines persistence operations for inventory rows
type InventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Inventory, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Inventory, error)

	// FindByProductIDs returns inventory rows keyed by product id
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*Inventory, error)

	// FindAll lists inventory. Filters: product_id, low_stock (bool).
	FindAll(ctx context.Context, filter shared.Filter) ([]Inventory, int64, error)

	ExistsByProductID(ctx context.Context, productID uuid.UUID) (bool, error)

	// ApplyDelta atomically adds delta to quantity. The update only applies
	// while the result stays at or above reserved_quantity; otherwise it
	// returns shared.ErrInsufficientStock.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta int) (*Inventory, error)

	Save(ctx context.Context, inv *Inventory) error
	Delete(ctx context.Context, id uuid.UUID) error
}
