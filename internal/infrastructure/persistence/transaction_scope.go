package persistence

import (
	"context"

	appaddress "github.com/storefront/backend/internal/application/address"
	appinv "github.com/storefront/backend/internal/application/inventory"
	applocation "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/domain/address"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/location"
	"gorm.io/gorm"
)

// GormLocationTransactionScope runs location writes in one GORM transaction.
// If fn returns an error the transaction is rolled back.
type GormLocationTransactionScope struct {
	db *gorm.DB
}

// NewGormLocationTransactionScope creates a new GormLocationTransactionScope
func NewGormLocationTransactionScope(db *gorm.DB) *GormLocationTransactionScope {
	return &GormLocationTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormLocationTransactionScope) Execute(ctx context.Context, fn func(repos applocation.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLocationRepositories{tx: tx})
	})
}

type gormLocationRepositories struct {
	tx *gorm.DB
}

func (r *gormLocationRepositories) CountryRepo() location.CountryRepository {
	return NewGormCountryRepository(r.tx)
}

func (r *gormLocationRepositories) StateRepo() location.StateRepository {
	return NewGormStateRepository(r.tx)
}

func (r *gormLocationRepositories) CityRepo() location.CityRepository {
	return NewGormCityRepository(r.tx)
}

func (r *gormLocationRepositories) PincodeRepo() location.PincodeRepository {
	return NewGormPincodeRepository(r.tx)
}

// GormAddressTransactionScope runs address writes in one GORM transaction
type GormAddressTransactionScope struct {
	db *gorm.DB
}

// NewGormAddressTransactionScope creates a new GormAddressTransactionScope
func NewGormAddressTransactionScope(db *gorm.DB) *GormAddressTransactionScope {
	return &GormAddressTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormAddressTransactionScope) Execute(ctx context.Context, fn func(repos appaddress.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAddressRepositories{tx: tx})
	})
}

type gormAddressRepositories struct {
	tx *gorm.DB
}

// AddressRepo returns the address repository scoped to the current transaction
func (r *gormAddressRepositories) AddressRepo() address.AddressRepository {
	return NewGormAddressRepository(r.tx)
}

// GormInventoryTransactionScope runs a stock adjustment and its ledger row atomically
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

// InventoryRepo returns the inventory repository scoped to the current transaction
func (r *gormInventoryRepositories) InventoryRepo() inventory.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormInventoryRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var (
	_ applocation.TransactionScope          = (*GormLocationTransactionScope)(nil)
	_ applocation.TransactionalRepositories = (*gormLocationRepositories)(nil)
	_ appaddress.TransactionScope           = (*GormAddressTransactionScope)(nil)
	_ appaddress.TransactionalRepositories  = (*gormAddressRepositories)(nil)
	_ appinv.TransactionScope               = (*GormInventoryTransactionScope)(nil)
	_ appinv.TransactionalRepositories      = (*gormInventoryRepositories)(nil)
)
