package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentGatewayRepository defines persistence operations for gateways
type PaymentGatewayRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentGateway, error)

	// FindAll lists gateways. Filters: is_active (bool). Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentGateway, int64, error)

	// FindActive returns active gateways ordered by sort_order, name
	FindActive(ctx context.Context) ([]PaymentGateway, error)

	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, gateway *PaymentGateway) error
	Delete(ctx context.Context, id uuid.UUID) error
}
