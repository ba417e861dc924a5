package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/query"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductReader looks up products. catalog.ProductRepository satisfies it.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// InventoryService handles stock records and manual adjustments
type InventoryService struct {
	inventoryRepo inventory.InventoryRepository
	movementRepo  inventory.StockMovementRepository
	products      ProductReader
	scope         TransactionScope
	logger        *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventoryRepo inventory.InventoryRepository,
	movementRepo inventory.StockMovementRepository,
	products ProductReader,
	scope TransactionScope,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		products:      products,
		scope:         scope,
		logger:        logger,
	}
}

// Create creates the inventory row of a product. A product has at most one.
func (s *InventoryService) Create(ctx context.Context, req CreateInventoryRequest) (*InventoryResponse, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, notFoundAs(err, "Product")
	}
	exists, err := s.inventoryRepo.ExistsByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewAlreadyExistsError("Inventory for this product already exists")
	}

	inv, err := inventory.NewInventory(req.ProductID, req.Quantity, req.ReservedQuantity, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		status, err := shared.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := inv.SetStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInventoryResponse(inv)
	return &resp, nil
}

// GetByID retrieves an inventory row
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*InventoryResponse, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Inventory")
	}
	resp := ToInventoryResponse(inv)
	return &resp, nil
}

// List lists inventory rows
func (s *InventoryService) List(ctx context.Context, filter InventoryListFilter) (shared.Paginated[InventoryResponse], error) {
	f := filter.Filter()
	if filter.ProductID != nil {
		f = f.With("product_id", *filter.ProductID)
	}
	if filter.LowStock {
		f = f.With("low_stock", true)
	}

	rows, total, err := s.inventoryRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[InventoryResponse]{}, err
	}
	items := make([]InventoryResponse, len(rows))
	for i := range rows {
		items[i] = ToInventoryResponse(&rows[i])
	}
	return shared.NewPaginated(items, total, f), nil
}

// Update applies the fields present in req
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req UpdateInventoryRequest) (*InventoryResponse, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Inventory")
	}

	if req.Quantity != nil || req.ReservedQuantity != nil {
		qty, reserved := inv.Quantity, inv.ReservedQuantity
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		if req.ReservedQuantity != nil {
			reserved = *req.ReservedQuantity
		}
		if err := inv.SetQuantities(qty, reserved); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := inv.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status, err := shared.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if err := inv.SetStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.inventoryRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInventoryResponse(inv)
	return &resp, nil
}

// Delete deletes an inventory row
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.inventoryRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "Inventory")
	}
	return s.inventoryRepo.Delete(ctx, id)
}

// Adjust applies a signed delta to the on-hand quantity and records the
// movement in the same transaction. A result below zero or below the
// reserved quantity fails with INSUFFICIENT_STOCK.
func (s *InventoryService) Adjust(ctx context.Context, caller identity.Principal, id uuid.UUID, req AdjustStockRequest) (*AdjustResult, error) {
	if _, err := inventory.ValidateAdjustment(req.Delta, req.Reason); err != nil {
		return nil, err
	}

	var actorID *uuid.UUID
	if caller.UserID != uuid.Nil {
		actor := caller.UserID
		actorID = &actor
	}

	var (
		inv      *inventory.Inventory
		movement *inventory.StockMovement
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.InventoryRepo().FindByID(ctx, id); err != nil {
			return notFoundAs(err, "Inventory")
		}

		updated, err := repos.InventoryRepo().ApplyDelta(ctx, id, req.Delta)
		if err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				return shared.NewDomainError(shared.CodeInsufficientStock, "Adjustment would leave less stock than is on hand or reserved")
			}
			return err
		}

		m, err := inventory.NewStockMovement(updated, req.Delta, req.Reason, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, m); err != nil {
			return err
		}
		inv, movement = updated, m
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("inventory_id", inv.ID.String()),
		zap.String("product_id", inv.ProductID.String()),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", inv.Quantity),
	}
	if inv.IsLowStock() {
		s.logger.Warn("Stock below threshold after adjustment", append(fields, zap.Int("threshold", inv.LowStockThreshold))...)
	} else {
		s.logger.Info("Stock adjusted", fields...)
	}

	return &AdjustResult{
		Inventory: ToInventoryResponse(inv),
		Movement:  ToStockMovementResponse(movement),
	}, nil
}

// ListMovements lists the adjustment history of an inventory row
func (s *InventoryService) ListMovements(ctx context.Context, id uuid.UUID, q query.ListQuery) (shared.Paginated[StockMovementResponse], error) {
	if _, err := s.inventoryRepo.FindByID(ctx, id); err != nil {
		return shared.Paginated[StockMovementResponse]{}, notFoundAs(err, "Inventory")
	}
	f := q.Filter()
	rows, total, err := s.movementRepo.FindByInventory(ctx, id, f)
	if err != nil {
		return shared.Paginated[StockMovementResponse]{}, err
	}
	items := make([]StockMovementResponse, len(rows))
	for i := range rows {
		items[i] = ToStockMovementResponse(&rows[i])
	}
	return shared.NewPaginated(items, total, f), nil
}

func notFoundAs(err error, entity string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return err
}
