// Package inventory tracks stock on hand per product.
package inventory

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Inventory is the stock record of one product
type Inventory struct {
	shared.BaseEntity
	ProductID         uuid.UUID
	Quantity          int
	ReservedQuantity  int
	LowStockThreshold int
	Status            shared.Status
}

// NewInventory creates an inventory row for a product
func NewInventory(productID uuid.UUID, quantity, reserved, threshold int) (*Inventory, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id is required")
	}
	inv := &Inventory{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Status:     shared.StatusActive,
	}
	if err := inv.SetQuantities(quantity, reserved); err != nil {
		return nil, err
	}
	if err := inv.SetLowStockThreshold(threshold); err != nil {
		return nil, err
	}
	return inv, nil
}

// SetQuantities replaces on-hand and reserved quantities
func (i *Inventory) SetQuantities(quantity, reserved int) error {
	if quantity < 0 {
		return shared.NewValidationError("quantity cannot be negative")
	}
	if reserved < 0 {
		return shared.NewValidationError("reserved_quantity cannot be negative")
	}
	if reserved > quantity {
		return shared.NewValidationError("reserved_quantity cannot exceed quantity")
	}
	i.Quantity = quantity
	i.ReservedQuantity = reserved
	i.Touch()
	return nil
}

// SetLowStockThreshold sets the alert threshold
func (i *Inventory) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewValidationError("low_stock_threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.Touch()
	return nil
}

// SetStatus changes the status
func (i *Inventory) SetStatus(status shared.Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be 'active' or 'inactive'")
	}
	i.Status = status
	i.Touch()
	return nil
}

// Available returns the quantity that can still be sold
func (i *Inventory) Available() int {
	if i.ReservedQuantity >= i.Quantity {
		return 0
	}
	return i.Quantity - i.ReservedQuantity
}

// IsLowStock reports whether available stock is at or below the threshold
func (i *Inventory) IsLowStock() bool {
	return i.Available() <= i.LowStockThreshold
}

// CanFulfill reports whether qty units are available
func (i *Inventory) CanFulfill(qty int) bool {
	return i.Status == shared.StatusActive && i.Available() >= qty
}

// Adjust applies a signed delta to the on-hand quantity
func (i *Inventory) Adjust(delta int) error {
	next := i.Quantity + delta
	if next < 0 {
		return shared.NewDomainError(shared.CodeInsufficientStock, "adjustment would make quantity negative")
	}
	if next < i.ReservedQuantity {
		return shared.NewDomainError(shared.CodeInsufficientStock, "adjustment would drop quantity below reserved stock")
	}
	i.Quantity = next
	i.Touch()
	return nil
}
