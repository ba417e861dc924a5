package persistence

import (
	"testing"

	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with every storefront table
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every statement sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CountryModel{},
		&models.StateModel{},
		&models.CityModel{},
		&models.PincodeModel{},
		&models.AddressModel{},
		&models.CategoryModel{},
		&models.ProductModel{},
		&models.ProductDetailModel{},
		&models.ProductFAQModel{},
		&models.ProductReviewModel{},
		&models.InventoryModel{},
		&models.StockMovementModel{},
		&models.CouponModel{},
		&models.PaymentGatewayModel{},
	))
	return db
}
