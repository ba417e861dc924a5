package location

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chain struct {
	country *location.Country
	state   *location.State
	city    *location.City
	pincode *location.Pincode
}

func newChain(t *testing.T) chain {
	t.Helper()
	country := newTestCountry(t)
	state, err := location.NewState(country.ID, "Karnataka", "KA")
	require.NoError(t, err)
	city, err := location.NewCity(state.ID, "Bengaluru")
	require.NoError(t, err)
	pincode, err := location.NewPincode(city.ID, "560001", "MG Road")
	require.NoError(t, err)
	return chain{country: country, state: state, city: city, pincode: pincode}
}

type resolverFixture struct {
	pincodes  *MockPincodeRepository
	cities    *MockCityRepository
	states    *MockStateRepository
	countries *MockCountryRepository
	cache     *MockResolutionCache
	svc       *ResolverService
}

func newResolverFixture() resolverFixture {
	f := resolverFixture{
		pincodes:  new(MockPincodeRepository),
		cities:    new(MockCityRepository),
		states:    new(MockStateRepository),
		countries: new(MockCountryRepository),
		cache:     new(MockResolutionCache),
	}
	f.svc = NewResolverService(f.pincodes, f.cities, f.states, f.countries, f.cache, zap.NewNop())
	return f
}

func TestResolverService_Resolve(t *testing.T) {
	ctx := context.Background()
	c := newChain(t)
	f := newResolverFixture()

	f.cache.On("Get", ctx, "560001").Return(nil, false, nil)
	f.cache.On("Generation", ctx).Return(int64(7), nil)
	f.pincodes.On("FindByCode", ctx, "560001").Return(c.pincode, nil)
	f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
	f.states.On("FindByID", ctx, c.state.ID).Return(c.state, nil)
	f.countries.On("FindByID", ctx, c.country.ID).Return(c.country, nil)
	f.cache.On("Set", ctx, int64(7), "560001", mock.AnythingOfType("*location.ResolvedLocation")).Return(nil)

	got, err := f.svc.Resolve(ctx, " 560001 ")
	require.NoError(t, err)
	assert.Equal(t, c.pincode.ID, got.PincodeID)
	assert.Equal(t, c.city.ID, got.CityID)
	assert.Equal(t, c.state.ID, got.StateID)
	assert.Equal(t, c.country.ID, got.CountryID)
	assert.Equal(t, "Bengaluru", got.CityName)
	f.cache.AssertExpectations(t)
}

func TestResolverService_Resolve_CacheHit(t *testing.T) {
	ctx := context.Background()
	f := newResolverFixture()
	cached := &ResolvedLocation{Pincode: "560001", CityName: "Bengaluru"}

	f.cache.On("Get", ctx, "560001").Return(cached, true, nil)

	got, err := f.svc.Resolve(ctx, "560001")
	require.NoError(t, err)
	assert.Same(t, cached, got)
	f.pincodes.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}

func TestResolverService_Resolve_CacheErrorIsBypassed(t *testing.T) {
	ctx := context.Background()
	c := newChain(t)
	f := newResolverFixture()

	f.cache.On("Get", ctx, "560001").Return(nil, false, errors.New("redis down"))
	f.cache.On("Generation", ctx).Return(int64(7), nil)
	f.pincodes.On("FindByCode", ctx, "560001").Return(c.pincode, nil)
	f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
	f.states.On("FindByID", ctx, c.state.ID).Return(c.state, nil)
	f.countries.On("FindByID", ctx, c.country.ID).Return(c.country, nil)
	f.cache.On("Set", ctx, int64(7), "560001", mock.Anything).Return(errors.New("redis down"))

	got, err := f.svc.Resolve(ctx, "560001")
	require.NoError(t, err)
	assert.Equal(t, c.country.ID, got.CountryID)
}

func TestResolverService_Resolve_SkipsWriteWithoutGeneration(t *testing.T) {
	ctx := context.Background()
	c := newChain(t)
	f := newResolverFixture()

	f.cache.On("Get", ctx, "560001").Return(nil, false, nil)
	f.cache.On("Generation", ctx).Return(int64(0), errors.New("redis down"))
	f.pincodes.On("FindByCode", ctx, "560001").Return(c.pincode, nil)
	f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
	f.states.On("FindByID", ctx, c.state.ID).Return(c.state, nil)
	f.countries.On("FindByID", ctx, c.country.ID).Return(c.country, nil)

	got, err := f.svc.Resolve(ctx, "560001")
	require.NoError(t, err)
	assert.Equal(t, c.pincode.ID, got.PincodeID)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolverService_Resolve_InvalidCode(t *testing.T) {
	f := newResolverFixture()
	for _, raw := range []string{"", "56000", "5600011", "56000a"} {
		_, err := f.svc.Resolve(context.Background(), raw)
		assert.ErrorIs(t, err, shared.ErrInvalidInput, raw)
	}
}

func TestResolverService_Resolve_BrokenLinks(t *testing.T) {
	ctx := context.Background()

	t.Run("pincode", func(t *testing.T) {
		f := newResolverFixture()
		f.cache.On("Get", ctx, "110001").Return(nil, false, nil)
		f.cache.On("Generation", ctx).Return(int64(7), nil)
		f.pincodes.On("FindByCode", ctx, "110001").Return(nil, shared.ErrNotFound)

		_, err := f.svc.Resolve(ctx, "110001")
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Pincode not found", err.Error())
	})

	t.Run("state", func(t *testing.T) {
		c := newChain(t)
		f := newResolverFixture()
		f.cache.On("Get", ctx, "560001").Return(nil, false, nil)
		f.cache.On("Generation", ctx).Return(int64(7), nil)
		f.pincodes.On("FindByCode", ctx, "560001").Return(c.pincode, nil)
		f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
		f.states.On("FindByID", ctx, c.state.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Resolve(ctx, "560001")
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "State not found", err.Error())
		f.countries.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("country", func(t *testing.T) {
		c := newChain(t)
		f := newResolverFixture()
		f.cache.On("Get", ctx, "560001").Return(nil, false, nil)
		f.cache.On("Generation", ctx).Return(int64(7), nil)
		f.pincodes.On("FindByCode", ctx, "560001").Return(c.pincode, nil)
		f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
		f.states.On("FindByID", ctx, c.state.ID).Return(c.state, nil)
		f.countries.On("FindByID", ctx, c.country.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Resolve(ctx, "560001")
		assert.Equal(t, "Country not found", err.Error())
	})
}

func TestResolverService_ResolveByID(t *testing.T) {
	ctx := context.Background()
	c := newChain(t)
	f := newResolverFixture()

	f.pincodes.On("FindByID", ctx, c.pincode.ID).Return(c.pincode, nil)
	f.cities.On("FindByID", ctx, c.city.ID).Return(c.city, nil)
	f.states.On("FindByID", ctx, c.state.ID).Return(c.state, nil)
	f.countries.On("FindByID", ctx, c.country.ID).Return(c.country, nil)

	got, err := f.svc.ResolveByID(ctx, c.pincode.ID)
	require.NoError(t, err)
	assert.Equal(t, "560001", got.Pincode)
	assert.Equal(t, "India", got.CountryName)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
