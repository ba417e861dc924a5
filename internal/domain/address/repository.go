package address

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	// FindByID finds an address by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindAll lists addresses. Filters: user_id. Default address first.
	FindAll(ctx context.Context, filter shared.Filter) ([]Address, int64, error)

	// CountByUser counts the addresses owned by a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// FindLatestByUser returns the most recently updated address of a user,
	// skipping excludeID. Returns shared.ErrNotFound when there is none.
	FindLatestByUser(ctx context.Context, userID uuid.UUID, excludeID uuid.UUID) (*Address, error)

	// ClearDefault sets is_default=false on every address of userID except exceptID
	ClearDefault(ctx context.Context, userID uuid.UUID, exceptID uuid.UUID) error

	// CountDefaults counts the default addresses of a user
	CountDefaults(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
