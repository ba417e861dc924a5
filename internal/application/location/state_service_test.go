package location

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCountry(t *testing.T) *location.Country {
	t.Helper()
	c, err := location.NewCountry("India", "IN", "+91")
	require.NoError(t, err)
	return c
}

func TestStateService_Create(t *testing.T) {
	ctx := context.Background()
	country := newTestCountry(t)

	stateRepo := new(MockStateRepository)
	countryRepo := new(MockCountryRepository)
	cache := new(MockResolutionCache)
	svc := NewStateService(stateRepo, countryRepo, cache, zap.NewNop())

	countryRepo.On("FindByID", ctx, country.ID).Return(country, nil)
	stateRepo.On("ExistsByCountryAndName", ctx, country.ID, "Karnataka", (*uuid.UUID)(nil)).Return(false, nil)
	stateRepo.On("Save", ctx, mock.AnythingOfType("*location.State")).Return(nil)
	cache.On("Invalidate", ctx).Return(nil)

	resp, err := svc.Create(ctx, CreateStateRequest{CountryID: country.ID, Name: " Karnataka ", StateCode: "ka"})
	require.NoError(t, err)
	assert.Equal(t, "Karnataka", resp.Name)
	assert.Equal(t, "KA", resp.StateCode)
	assert.Equal(t, "active", resp.Status)
	cache.AssertExpectations(t)
}

func TestStateService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	country := newTestCountry(t)

	stateRepo := new(MockStateRepository)
	countryRepo := new(MockCountryRepository)
	svc := NewStateService(stateRepo, countryRepo, NoopResolutionCache{}, zap.NewNop())

	countryRepo.On("FindByID", ctx, country.ID).Return(country, nil)
	stateRepo.On("ExistsByCountryAndName", ctx, country.ID, "Goa", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, CreateStateRequest{CountryID: country.ID, Name: "Goa"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	stateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStateService_Create_CountryMissing(t *testing.T) {
	ctx := context.Background()
	countryID := uuid.New()

	countryRepo := new(MockCountryRepository)
	svc := NewStateService(new(MockStateRepository), countryRepo, NoopResolutionCache{}, zap.NewNop())

	countryRepo.On("FindByID", ctx, countryID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(ctx, CreateStateRequest{CountryID: countryID, Name: "Goa"})
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Country not found", err.Error())
}

func TestStateService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	state, err := location.NewState(uuid.New(), "Goa", "GA")
	require.NoError(t, err)

	stateRepo := new(MockStateRepository)
	svc := NewStateService(stateRepo, new(MockCountryRepository), NoopResolutionCache{}, zap.NewNop())

	stateRepo.On("FindByID", ctx, state.ID).Return(state, nil)
	stateRepo.On("Save", ctx, state).Return(nil)

	inactive := "inactive"
	resp, err := svc.Update(ctx, state.ID, UpdateStateRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Goa", resp.Name)
	assert.Equal(t, "GA", resp.StateCode)
	assert.Equal(t, "inactive", resp.Status)
	stateRepo.AssertNotCalled(t, "ExistsByCountryAndName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStateService_Update_RenameChecksUniqueness(t *testing.T) {
	ctx := context.Background()
	state, err := location.NewState(uuid.New(), "Goa", "")
	require.NoError(t, err)

	stateRepo := new(MockStateRepository)
	svc := NewStateService(stateRepo, new(MockCountryRepository), NoopResolutionCache{}, zap.NewNop())

	stateRepo.On("FindByID", ctx, state.ID).Return(state, nil)
	stateRepo.On("ExistsByCountryAndName", ctx, state.CountryID, "Kerala", &state.ID).Return(true, nil)

	name := "Kerala"
	_, err = svc.Update(ctx, state.ID, UpdateStateRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestStateService_Delete_WithCities(t *testing.T) {
	ctx := context.Background()
	state, err := location.NewState(uuid.New(), "Goa", "")
	require.NoError(t, err)

	stateRepo := new(MockStateRepository)
	svc := NewStateService(stateRepo, new(MockCountryRepository), NoopResolutionCache{}, zap.NewNop())

	stateRepo.On("FindByID", ctx, state.ID).Return(state, nil)
	stateRepo.On("HasCities", ctx, state.ID).Return(true, nil)

	err = svc.Delete(ctx, state.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	stateRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCountryService_List(t *testing.T) {
	ctx := context.Background()
	countryRepo := new(MockCountryRepository)
	svc := NewCountryService(countryRepo, NoopResolutionCache{}, zap.NewNop())

	countries := []location.Country{*newTestCountry(t)}
	countryRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.Limit == 1 && f.Status == shared.StatusActive
	})).Return(countries, int64(3), nil)

	filter := CountryListFilter{}
	filter.Page, filter.Limit, filter.Status = 2, 1, "active"
	page, err := svc.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPrevPage)
}
