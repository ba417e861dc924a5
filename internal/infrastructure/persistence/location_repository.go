package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCountryRepository implements CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by its ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds the first country with the given name, ignoring case
func (r *GormCountryRepository) FindByName(ctx context.Context, name string) (*location.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists countries matching the filter
func (r *GormCountryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Country, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CountryModel{})
	query = applyStatus(query, filter)
	query = applySearch(query, filter.Search, "name")

	rows, total, err := findPage[models.CountryModel](query, filter, countrySort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	countries := make([]location.Country, len(rows))
	for i := range rows {
		countries[i] = *rows[i].ToDomain()
	}
	return countries, total, nil
}

// ExistingIDs reports which of the given ids are stored countries
func (r *GormCountryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return existingIDs(r.db.WithContext(ctx).Model(&models.CountryModel{}), ids)
}

// HasStates checks if any state belongs to the country
func (r *GormCountryRepository) HasStates(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsQuery(r.db.WithContext(ctx).Model(&models.StateModel{}).Where("country_id = ?", id), nil)
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *location.Country) error {
	return translateError(r.db.WithContext(ctx).Save(models.CountryModelFromDomain(country)).Error)
}

// Delete deletes a country
func (r *GormCountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.CountryModel{}, "id = ?", id))
}

// GormStateRepository implements StateRepository using GORM
type GormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new GormStateRepository
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

// FindByID finds a state by its ID
func (r *GormStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.State, error) {
	var model models.StateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCountryAndName finds a state of a country by name, ignoring case
func (r *GormStateRepository) FindByCountryAndName(ctx context.Context, countryID uuid.UUID, name string) (*location.State, error) {
	var model models.StateModel
	if err := r.db.WithContext(ctx).
		Where("country_id = ? AND LOWER(name) = ?", countryID, strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists states matching the filter
func (r *GormStateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.State, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StateModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "country_id", "country_id")
	query = applySearch(query, filter.Search, "name")

	rows, total, err := findPage[models.StateModel](query, filter, stateSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	states := make([]location.State, len(rows))
	for i := range rows {
		states[i] = *rows[i].ToDomain()
	}
	return states, total, nil
}

// ExistsByCountryAndName checks whether the country already has a state with that name
func (r *GormStateRepository) ExistsByCountryAndName(ctx context.Context, countryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.StateModel{}).
		Where("country_id = ? AND LOWER(name) = ?", countryID, strings.ToLower(strings.TrimSpace(name)))
	return existsQuery(query, excludeID)
}

// ExistingIDs reports which of the given ids are stored states
func (r *GormStateRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return existingIDs(r.db.WithContext(ctx).Model(&models.StateModel{}), ids)
}

// HasCities checks if any city belongs to the state
func (r *GormStateRepository) HasCities(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsQuery(r.db.WithContext(ctx).Model(&models.CityModel{}).Where("state_id = ?", id), nil)
}

// Save creates or updates a state
func (r *GormStateRepository) Save(ctx context.Context, state *location.State) error {
	return translateError(r.db.WithContext(ctx).Save(models.StateModelFromDomain(state)).Error)
}

// Delete deletes a state
func (r *GormStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.StateModel{}, "id = ?", id))
}

// GormCityRepository implements CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by its ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByStateAndName finds a city of a state by name, ignoring case
func (r *GormCityRepository) FindByStateAndName(ctx context.Context, stateID uuid.UUID, name string) (*location.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).
		Where("state_id = ? AND LOWER(name) = ?", stateID, strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists cities matching the filter
func (r *GormCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.City, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CityModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "state_id", "state_id")
	query = applySearch(query, filter.Search, "name")

	rows, total, err := findPage[models.CityModel](query, filter, citySort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	cities := make([]location.City, len(rows))
	for i := range rows {
		cities[i] = *rows[i].ToDomain()
	}
	return cities, total, nil
}

// ExistsByStateAndName checks whether the state already has a city with that name
func (r *GormCityRepository) ExistsByStateAndName(ctx context.Context, stateID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.CityModel{}).
		Where("state_id = ? AND LOWER(name) = ?", stateID, strings.ToLower(strings.TrimSpace(name)))
	return existsQuery(query, excludeID)
}

// ExistingIDs reports which of the given ids are stored cities
func (r *GormCityRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return existingIDs(r.db.WithContext(ctx).Model(&models.CityModel{}), ids)
}

// HasPincodes checks if any pincode belongs to the city
func (r *GormCityRepository) HasPincodes(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsQuery(r.db.WithContext(ctx).Model(&models.PincodeModel{}).Where("city_id = ?", id), nil)
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *location.City) error {
	return translateError(r.db.WithContext(ctx).Save(models.CityModelFromDomain(city)).Error)
}

// Delete deletes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.CityModel{}, "id = ?", id))
}

// GormPincodeRepository implements PincodeRepository using GORM
type GormPincodeRepository struct {
	db *gorm.DB
}

// NewGormPincodeRepository creates a new GormPincodeRepository
func NewGormPincodeRepository(db *gorm.DB) *GormPincodeRepository {
	return &GormPincodeRepository{db: db}
}

// FindByID finds a pincode by its ID
func (r *GormPincodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Pincode, error) {
	var model models.PincodeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode returns the oldest pincode row carrying the code
func (r *GormPincodeRepository) FindByCode(ctx context.Context, code string) (*location.Pincode, error) {
	var model models.PincodeModel
	if err := r.db.WithContext(ctx).
		Where("pincode = ?", strings.TrimSpace(code)).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCityAndCode finds a pincode of a city
func (r *GormPincodeRepository) FindByCityAndCode(ctx context.Context, cityID uuid.UUID, code string) (*location.Pincode, error) {
	var model models.PincodeModel
	if err := r.db.WithContext(ctx).
		Where("city_id = ? AND pincode = ?", cityID, strings.TrimSpace(code)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists pincodes matching the filter
func (r *GormPincodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Pincode, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PincodeModel{})
	query = applyStatus(query, filter)
	query = applyUUIDFilter(query, filter, "city_id", "city_id")
	query = applySearch(query, filter.Search, "pincode", "area_name")

	rows, total, err := findPage[models.PincodeModel](query, filter, pincodeSort, "created_at")
	if err != nil {
		return nil, 0, err
	}
	pincodes := make([]location.Pincode, len(rows))
	for i := range rows {
		pincodes[i] = *rows[i].ToDomain()
	}
	return pincodes, total, nil
}

// ExistsByCityAndCode checks whether the city already has the code
func (r *GormPincodeRepository) ExistsByCityAndCode(ctx context.Context, cityID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.PincodeModel{}).
		Where("city_id = ? AND pincode = ?", cityID, strings.TrimSpace(code))
	return existsQuery(query, excludeID)
}

// Save creates or updates a pincode
func (r *GormPincodeRepository) Save(ctx context.Context, pincode *location.Pincode) error {
	return translateError(r.db.WithContext(ctx).Save(models.PincodeModelFromDomain(pincode)).Error)
}

// Delete deletes a pincode
func (r *GormPincodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.PincodeModel{}, "id = ?", id))
}

var (
	_ location.CountryRepository = (*GormCountryRepository)(nil)
	_ location.StateRepository   = (*GormStateRepository)(nil)
	_ location.CityRepository    = (*GormCityRepository)(nil)
	_ location.PincodeRepository = (*GormPincodeRepository)(nil)
)
