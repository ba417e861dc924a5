package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// InventoryModel is the persistence model for a product's stock row
type InventoryModel struct {
	BaseModel
	ProductID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity          int           `gorm:"not null;default:0"`
	ReservedQuantity  int           `gorm:"not null;default:0"`
	LowStockThreshold int           `gorm:"not null;default:0"`
	Status            shared.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (InventoryModel) TableName() string {
	return "inventories"
}

// ToDomain converts the persistence model to a domain Inventory
func (m *InventoryModel) ToDomain() *inventory.Inventory {
	return &inventory.Inventory{
		BaseEntity:        m.BaseModel.ToDomain(),
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		ReservedQuantity:  m.ReservedQuantity,
		LowStockThreshold: m.LowStockThreshold,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Inventory
func (m *InventoryModel) FromDomain(i *inventory.Inventory) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
	m.ReservedQuantity = i.ReservedQuantity
	m.LowStockThreshold = i.LowStockThreshold
	m.Status = i.Status
}

// InventoryModelFromDomain creates a new persistence model from a domain Inventory
func InventoryModelFromDomain(i *inventory.Inventory) *InventoryModel {
	m := &InventoryModel{}
	m.FromDomain(i)
	return m
}

// StockMovementModel is an append-only ledger row for a stock change
type StockMovementModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	InventoryID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_movements_inventory_created,priority:1"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Delta         int        `gorm:"not null"`
	QuantityAfter int        `gorm:"not null"`
	Reason        string     `gorm:"type:varchar(255)"`
	ActorID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null;index:idx_stock_movements_inventory_created,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
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

// StockMovementModelFromDomain creates a new persistence model from a domain StockMovement
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:            mv.ID,
		InventoryID:   mv.InventoryID,
		ProductID:     mv.ProductID,
		Delta:         mv.Delta,
		QuantityAfter: mv.QuantityAfter,
		Reason:        mv.Reason,
		ActorID:       mv.ActorID,
		CreatedAt:     mv.CreatedAt,
	}
}
