package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCountryRepository is a mock implementation of CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByName(ctx context.Context, name string) (*location.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Country, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]location.Country), args.Get(1).(int64), args.Error(2)
}

func (m *MockCountryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockCountryRepository) HasStates(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *location.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockCountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockStateRepository is a mock implementation of StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.State), args.Error(1)
}

func (m *MockStateRepository) FindByCountryAndName(ctx context.Context, countryID uuid.UUID, name string) (*location.State, error) {
	args := m.Called(ctx, countryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.State), args.Error(1)
}

func (m *MockStateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.State, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]location.State), args.Get(1).(int64), args.Error(2)
}

func (m *MockStateRepository) ExistsByCountryAndName(ctx context.Context, countryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, countryID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStateRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockStateRepository) HasCities(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, state *location.State) error {
	return m.Called(ctx, state).Error(0)
}

func (m *MockStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCityRepository is a mock implementation of CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.City), args.Error(1)
}

func (m *MockCityRepository) FindByStateAndName(ctx context.Context, stateID uuid.UUID, name string) (*location.City, error) {
	args := m.Called(ctx, stateID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.City), args.Error(1)
}

func (m *MockCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.City, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]location.City), args.Get(1).(int64), args.Error(2)
}

func (m *MockCityRepository) ExistsByStateAndName(ctx context.Context, stateID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, stateID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockCityRepository) HasPincodes(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, city *location.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPincodeRepository is a mock implementation of PincodeRepository
type MockPincodeRepository struct {
	mock.Mock
}

func (m *MockPincodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Pincode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Pincode), args.Error(1)
}

func (m *MockPincodeRepository) FindByCode(ctx context.Context, code string) (*location.Pincode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Pincode), args.Error(1)
}

func (m *MockPincodeRepository) FindByCityAndCode(ctx context.Context, cityID uuid.UUID, code string) (*location.Pincode, error) {
	args := m.Called(ctx, cityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Pincode), args.Error(1)
}

func (m *MockPincodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Pincode, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]location.Pincode), args.Get(1).(int64), args.Error(2)
}

func (m *MockPincodeRepository) ExistsByCityAndCode(ctx context.Context, cityID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, cityID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPincodeRepository) Save(ctx context.Context, pincode *location.Pincode) error {
	return m.Called(ctx, pincode).Error(0)
}

func (m *MockPincodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockResolutionCache is a mock implementation of ResolutionCache
type MockResolutionCache struct {
	mock.Mock
}

func (m *MockResolutionCache) Get(ctx context.Context, pincode string) (*ResolvedLocation, bool, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*ResolvedLocation), args.Bool(1), args.Error(2)
}

func (m *MockResolutionCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResolutionCache) Set(ctx context.Context, gen int64, pincode string, loc *ResolvedLocation) error {
	return m.Called(ctx, gen, pincode, loc).Error(0)
}

func (m *MockResolutionCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
