package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	applocation "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHierarchy(t *testing.T, ctx context.Context, repos *gormLocationRepositories) (*location.Country, *location.State, *location.City, *location.Pincode) {
	t.Helper()
	country, err := location.NewCountry("India", "IN", "+91")
	require.NoError(t, err)
	require.NoError(t, repos.CountryRepo().Save(ctx, country))

	state, err := location.NewState(country.ID, "Maharashtra", "MH")
	require.NoError(t, err)
	require.NoError(t, repos.StateRepo().Save(ctx, state))

	city, err := location.NewCity(state.ID, "Mumbai")
	require.NoError(t, err)
	require.NoError(t, repos.CityRepo().Save(ctx, city))

	pincode, err := location.NewPincode(city.ID, "400001", "Fort")
	require.NoError(t, err)
	require.NoError(t, repos.PincodeRepo().Save(ctx, pincode))

	return country, state, city, pincode
}

func TestGormCountryRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repos := &gormLocationRepositories{tx: db}
	repo := NewGormCountryRepository(db)

	country, state, _, _ := seedHierarchy(t, ctx, repos)

	t.Run("FindByName ignores case", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "  INDIA ")
		require.NoError(t, err)
		assert.Equal(t, country.ID, found.ID)
		assert.Equal(t, "IN", found.ISOCode)
	})

	t.Run("FindByName returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Atlantis")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("HasStates", func(t *testing.T) {
		has, err := repo.HasStates(ctx, country.ID)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = NewGormStateRepository(db).HasCities(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("ExistingIDs", func(t *testing.T) {
		missing := uuid.New()
		found, err := NewGormStateRepository(db).ExistingIDs(ctx, []uuid.UUID{state.ID, missing})
		require.NoError(t, err)
		assert.True(t, found[state.ID])
		assert.False(t, found[missing])
	})

	t.Run("Delete unknown id returns ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormCountryRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewGormCountryRepository(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"India", "Indonesia", "Japan"} {
		c, err := location.NewCountry(name, "", "")
		require.NoError(t, err)
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if name == "Japan" {
			require.NoError(t, c.SetStatus(shared.StatusInactive))
		}
		require.NoError(t, repo.Save(ctx, c))
	}

	t.Run("newest first by default", func(t *testing.T) {
		countries, total, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "", ""))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, countries, 3)
		assert.Equal(t, "Japan", countries[0].Name)
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		countries, total, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "", "IND"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, countries, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		countries, total, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "inactive", ""))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Japan", countries[0].Name)
	})

	t.Run("page beyond the end is empty with the full total", func(t *testing.T) {
		countries, total, err := repo.FindAll(ctx, shared.NewFilter(3, 2, "", ""))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, countries)
	})

	t.Run("unknown sort column falls back to created_at", func(t *testing.T) {
		f := shared.NewFilter(1, 1, "", "")
		f.OrderBy = "name; DROP TABLE countries"
		f.OrderDir = "asc"
		countries, _, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, countries, 1)
		assert.Equal(t, "India", countries[0].Name)
	})
}

func TestGormStateRepository_Uniqueness(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repos := &gormLocationRepositories{tx: db}
	country, state, _, _ := seedHierarchy(t, ctx, repos)
	repo := repos.StateRepo()

	exists, err := repo.ExistsByCountryAndName(ctx, country.ID, "maharashtra", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCountryAndName(ctx, country.ID, "Maharashtra", &state.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByCountryAndName(ctx, country.ID, "MAHARASHTRA")
	require.NoError(t, err)
	assert.Equal(t, state.ID, found.ID)

	dup, err := location.NewState(country.ID, "Maharashtra", "")
	require.NoError(t, err)
	err = repo.Save(ctx, dup)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormPincodeRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repos := &gormLocationRepositories{tx: db}
	_, state, city, pincode := seedHierarchy(t, ctx, repos)
	repo := repos.PincodeRepo()

	other, err := location.NewCity(state.ID, "Thane")
	require.NoError(t, err)
	require.NoError(t, repos.CityRepo().Save(ctx, other))
	later, err := location.NewPincode(other.ID, "400001", "Later")
	require.NoError(t, err)
	later.CreatedAt = pincode.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, later))

	t.Run("FindByCode returns the first row for a shared code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "400001")
		require.NoError(t, err)
		assert.Equal(t, pincode.ID, found.ID)
		assert.Equal(t, city.ID, found.CityID)
	})

	t.Run("FindByCityAndCode", func(t *testing.T) {
		found, err := repo.FindByCityAndCode(ctx, other.ID, "400001")
		require.NoError(t, err)
		assert.Equal(t, later.ID, found.ID)
	})

	t.Run("ExistsByCityAndCode honours excludeID", func(t *testing.T) {
		exists, err := repo.ExistsByCityAndCode(ctx, city.ID, "400001", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCityAndCode(ctx, city.ID, "400001", &pincode.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FindAll filters by city", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "", "").With("city_id", other.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, later.ID, items[0].ID)
	})

	t.Run("FindAll searches area name", func(t *testing.T) {
		items, _, err := repo.FindAll(ctx, shared.NewFilter(1, 10, "", "fort"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, pincode.ID, items[0].ID)
	})
}

func TestGormLocationTransactionScope_RollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	scope := NewGormLocationTransactionScope(db)

	err := scope.Execute(ctx, func(repos applocation.TransactionalRepositories) error {
		country, err := location.NewCountry("Nepal", "NP", "")
		require.NoError(t, err)
		require.NoError(t, repos.CountryRepo().Save(ctx, country))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = NewGormCountryRepository(db).FindByName(ctx, "Nepal")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
