package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory row by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Inventory, error) {
	var model models.InventoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByProductID finds the inventory row of a product
func (r *GormInventoryRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Inventory, error) {
	var model models.InventoryModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByProductIDs loads inventory rows keyed by product id. Untracked products are absent from the map.
func (r *GormInventoryRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*inventory.Inventory, error) {
	result := make(map[uuid.UUID]*inventory.Inventory, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []models.InventoryModel
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ProductID] = rows[i].ToDomain()
	}
	return result, nil
}

// FindAll lists inventory rows matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Inventory, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "product_id", "product_id")
	if lowStock, ok := filter.Filters["low_stock"].(bool); ok && lowStock {
		query = query.Where("quantity - reserved_quantity <= low_stock_threshold")
	}

	rows, total, err := findPage[models.InventoryModel](query, filter, inventorySort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	items := make([]inventory.Inventory, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// ExistsByProductID checks whether the product already has an inventory row
func (r *GormInventoryRepository) ExistsByProductID(ctx context.Context, productID uuid.UUID) (bool, error) {
	return existsQuery(r.db.WithContext(ctx).Model(&models.InventoryModel{}).Where("product_id = ?", productID), nil)
}

// ApplyDelta adds delta to the on-hand quantity in a single conditional
// UPDATE. The row is left untouched when the result would fall below the
// reserved quantity, and ErrInsufficientStock is returned.
func (r *GormInventoryRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta int) (*inventory.Inventory, error) {
	result := r.db.WithContext(ctx).Model(&models.InventoryModel{}).
		Where("id = ? AND quantity + ? >= reserved_quantity AND quantity + ? >= 0", id, delta, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, shared.ErrInsufficientStock
	}
	return r.FindByID(ctx, id)
}

// Save creates or updates an inventory row
func (r *GormInventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	return translateError(r.db.WithContext(ctx).Save(models.InventoryModelFromDomain(inv)).Error)
}

// Delete deletes an inventory row
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.InventoryModel{}, "id = ?", id))
}

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return translateError(r.db.WithContext(ctx).Create(models.StockMovementModelFromDomain(movement)).Error)
}

// FindByInventory lists the movements of one inventory row, newest first
func (r *GormStockMovementRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).Where("inventory_id = ?", inventoryID)

	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"
	rows, total, err := findPage[models.StockMovementModel](query, filter, baseSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	movements := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, total, nil
}

var (
	_ inventory.InventoryRepository     = (*GormInventoryRepository)(nil)
	_ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
)
