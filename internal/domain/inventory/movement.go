package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// StockMovement is an append-only record of one manual stock adjustment
type StockMovement struct {
	ID            uuid.UUID
	InventoryID   uuid.UUID
	ProductID     uuid.UUID
	Delta         int
	QuantityAfter int
	Reason        string
	ActorID       *uuid.UUID
	CreatedAt     time.Time
}

// NewStockMovement records that inv was adjusted by delta
func NewStockMovement(inv *Inventory, delta int, reason string, actorID *uuid.UUID) (*StockMovement, error) {
	reason, err := ValidateAdjustment(delta, reason)
	if err != nil {
		return nil, err
	}
	return &StockMovement{
		ID:            uuid.New(),
		InventoryID:   inv.ID,
		ProductID:     inv.ProductID,
		Delta:         delta,
		QuantityAfter: inv.Quantity,
		Reason:        reason,
		ActorID:       actorID,
		CreatedAt:     time.Now(),
	}, nil
}

// StockMovementRepository stores adjustment history
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error

	// FindByInventory lists movements of one inventory row, newest first
	FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]StockMovement, int64, error)
}

// ValidateAdjustment checks a requested adjustment and returns the trimmed reason
func ValidateAdjustment(delta int, reason string) (string, error) {
	if delta == 0 {
		return "", shared.NewValidationError("delta cannot be zero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", shared.NewValidationError("reason is required")
	}
	if len(reason) > 255 {
		return "", shared.NewValidationError("reason cannot exceed 255 characters")
	}
	return reason, nil
}
