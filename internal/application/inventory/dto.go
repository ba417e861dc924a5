package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/inventory"
)

// CreateInventoryRequest creates the stock record of a product
type CreateInventoryRequest struct {
	ProductID         uuid.UUID `json:"product_id" binding:"required"`
	Quantity          int       `json:"quantity" binding:"min=0"`
	ReservedQuantity  int       `json:"reserved_quantity" binding:"min=0"`
	LowStockThreshold int       `json:"low_stock_threshold" binding:"min=0"`
	Status            string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateInventoryRequest is a partial inventory update
type UpdateInventoryRequest struct {
	ID                *uuid.UUID `json:"id"`
	Quantity          *int       `json:"quantity" binding:"omitempty,min=0"`
	ReservedQuantity  *int       `json:"reserved_quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int       `json:"low_stock_threshold" binding:"omitempty,min=0"`
	Status            *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// AdjustStockRequest applies a signed delta to the on-hand quantity
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,max=255"`
}

// InventoryListFilter filters the inventory list
type InventoryListFilter struct {
	query.ListQuery
	ProductID *uuid.UUID `form:"-"`
	LowStock  bool       `form:"low_stock"`
}

// InventoryResponse represents an inventory row in API responses
type InventoryResponse struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToInventoryResponse converts a domain Inventory
func ToInventoryResponse(i *inventory.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:                i.ID,
		ProductID:         i.ProductID,
		Quantity:          i.Quantity,
		ReservedQuantity:  i.ReservedQuantity,
		AvailableQuantity: i.Available(),
		LowStockThreshold: i.LowStockThreshold,
		IsLowStock:        i.IsLowStock(),
		Status:            string(i.Status),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// StockMovementResponse represents one adjustment in API responses
type StockMovementResponse struct {
	ID            uuid.UUID  `json:"id"`
	InventoryID   uuid.UUID  `json:"inventory_id"`
	ProductID     uuid.UUID  `json:"product_id"`
	Delta         int        `json:"delta"`
	QuantityAfter int        `json:"quantity_after"`
	Reason        string     `json:"reason"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToStockMovementResponse converts a domain StockMovement
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		InventoryID:   m.InventoryID,
		ProductID:     m.ProductID,
		Delta:         m.Delta,
		QuantityAfter: m.QuantityAfter,
		Reason:        m.Reason,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
}

// AdjustResult is the outcome of a stock adjustment
type AdjustResult struct {
	Inventory InventoryResponse     `json:"inventory"`
	Movement  StockMovementResponse `json:"movement"`
}
