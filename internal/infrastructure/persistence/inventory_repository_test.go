package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	appinv "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormInventoryRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormInventoryRepository(db)

	healthy, err := inventory.NewInventory(uuid.New(), 50, 5, 10)
	require.NoError(t, err)
	low, err := inventory.NewInventory(uuid.New(), 12, 4, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, healthy))
	require.NoError(t, repo.Save(ctx, low))

	t.Run("one row per product", func(t *testing.T) {
		dup, err := inventory.NewInventory(healthy.ProductID, 1, 0, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)

		exists, err := repo.ExistsByProductID(ctx, healthy.ProductID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("low_stock compares available quantity with the threshold", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "", "").With("low_stock", true))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, low.ID, items[0].ID)
	})

	t.Run("FindByProductIDs keys rows by product", func(t *testing.T) {
		untracked := uuid.New()
		rows, err := repo.FindByProductIDs(ctx, []uuid.UUID{healthy.ProductID, untracked})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, 50, rows[healthy.ProductID].Quantity)
		assert.NotContains(t, rows, untracked)
	})

	t.Run("ApplyDelta adds and subtracts", func(t *testing.T) {
		updated, err := repo.ApplyDelta(ctx, healthy.ID, -20)
		require.NoError(t, err)
		assert.Equal(t, 30, updated.Quantity)

		updated, err = repo.ApplyDelta(ctx, healthy.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 35, updated.Quantity)
	})

	t.Run("ApplyDelta refuses to drop below reserved", func(t *testing.T) {
		_, err := repo.ApplyDelta(ctx, low.ID, -9)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		unchanged, err := repo.FindByID(ctx, low.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, unchanged.Quantity)
	})

	t.Run("ApplyDelta on a missing row", func(t *testing.T) {
		_, err := repo.ApplyDelta(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockMovementRepository_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormStockMovementRepository(db)

	inv, err := inventory.NewInventory(uuid.New(), 10, 0, 0)
	require.NoError(t, err)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, delta := range []int{5, -3, 2} {
		mv, err := inventory.NewStockMovement(inv, delta, "restock", nil)
		require.NoError(t, err)
		mv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, mv))
	}

	f := shared.NewFilter(1, 2, "", "")
	f.OrderBy, f.OrderDir = "id", "asc"
	items, total, err := repo.FindByInventory(ctx, inv.ID, f)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Delta)
	assert.Equal(t, -3, items[1].Delta)
}

func TestGormInventoryTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	scope := NewGormInventoryTransactionScope(db)

	inv, err := inventory.NewInventory(uuid.New(), 10, 0, 0)
	require.NoError(t, err)
	require.NoError(t, NewGormInventoryRepository(db).Save(ctx, inv))

	err = scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		updated, err := repos.InventoryRepo().ApplyDelta(ctx, inv.ID, 4)
		if err != nil {
			return err
		}
		mv, err := inventory.NewStockMovement(updated, 4, "restock", nil)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, mv); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	reloaded, err := NewGormInventoryRepository(db).FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Quantity)

	_, total, err := NewGormStockMovementRepository(db).FindByInventory(ctx, inv.ID, shared.NewFilter(1, 10, "", ""))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func newMockInventoryRepository(t *testing.T) (*GormInventoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewGormInventoryRepository(gormDB), mock, mockDB
}

func TestGormInventoryRepository_ApplyDeltaSQL(t *testing.T) {
	repo, mock, mockDB := newMockInventoryRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE "inventories" SET "quantity"=quantity \+ \$1,"updated_at"=\$2 WHERE id = \$3 AND quantity \+ \$4 >= reserved_quantity AND quantity \+ \$5 >= 0`).
		WithArgs(-3, sqlmock.AnyArg(), id, -3, -3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "inventories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "reserved_quantity"}).
			AddRow(id, uuid.New(), 2, 0))

	_, err := repo.ApplyDelta(context.Background(), id, -3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
