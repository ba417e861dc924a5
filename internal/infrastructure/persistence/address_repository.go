package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/address"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*address.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists addresses matching the filter with the default address first
func (r *GormAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]address.Address, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AddressModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "user_id", "user_id")

	rows, total, err := findPage[models.AddressModel](query, filter, addressSort, "created_at", "is_default DESC")
	if err != nil {
		return nil, 0, err
	}
	addresses := make([]address.Address, len(rows))
	for i := range rows {
		addresses[i] = *rows[i].ToDomain()
	}
	return addresses, total, nil
}

// CountByUser counts the addresses owned by a user
func (r *GormAddressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AddressModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FindLatestByUser returns the most recently updated address of a user other than excludeID
func (r *GormAddressRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID, excludeID uuid.UUID) (*address.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id <> ?", userID, excludeID).
		Order("updated_at DESC").
		Order("id DESC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ClearDefault unsets the default flag on every address of the user except
// exceptID. updated_at is left alone so the flag change does not reorder
// FindLatestByUser.
func (r *GormAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.AddressModel{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		UpdateColumn("is_default", false).Error
}

// CountDefaults counts the user's addresses flagged as default
func (r *GormAddressRepository) CountDefaults(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error
	return count, err
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, a *address.Address) error {
	return translateError(r.db.WithContext(ctx).Save(models.AddressModelFromDomain(a)).Error)
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id))
}

var _ address.AddressRepository = (*GormAddressRepository)(nil)
