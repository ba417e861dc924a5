package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressapp "github.com/storefront/backend/internal/application/address"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	sheetimport "github.com/storefront/backend/internal/infrastructure/import"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// storeServices wires the application services over a real database
type storeServices struct {
	countries  *locationapp.CountryService
	states     *locationapp.StateService
	cities     *locationapp.CityService
	pincodes   *locationapp.PincodeService
	resolver   *locationapp.ResolverService
	importer   *locationapp.ImportService
	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
	inventory  *inventoryapp.InventoryService
	addresses  *addressapp.AddressService
}

func newStoreServices(db *gorm.DB, locCache locationapp.ResolutionCache) *storeServices {
	log := zap.NewNop()
	countryRepo := persistence.NewGormCountryRepository(db)
	stateRepo := persistence.NewGormStateRepository(db)
	cityRepo := persistence.NewGormCityRepository(db)
	pincodeRepo := persistence.NewGormPincodeRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)

	s := &storeServices{
		countries:  locationapp.NewCountryService(countryRepo, locCache, log),
		states:     locationapp.NewStateService(stateRepo, countryRepo, locCache, log),
		cities:     locationapp.NewCityService(cityRepo, stateRepo, locCache, log),
		pincodes:   locationapp.NewPincodeService(pincodeRepo, cityRepo, locCache, log),
		resolver:   locationapp.NewResolverService(pincodeRepo, cityRepo, stateRepo, countryRepo, locCache, log),
		importer:   locationapp.NewImportService(persistence.NewGormLocationTransactionScope(db), locCache, locationapp.NoopImportRecorder{}, log),
		categories: catalogapp.NewCategoryService(categoryRepo, productRepo, log),
		products:   catalogapp.NewProductService(productRepo, categoryRepo, log),
	}
	s.inventory = inventoryapp.NewInventoryService(persistence.NewGormInventoryRepository(db),
		persistence.NewGormStockMovementRepository(db), productRepo,
		persistence.NewGormInventoryTransactionScope(db), log)
	s.addresses = addressapp.NewAddressService(persistence.NewGormAddressRepository(db),
		persistence.NewGormAddressTransactionScope(db), s.resolver, log)
	return s
}

func parseCSV(t *testing.T, rows ...string) *sheetimport.Sheet {
	t.Helper()
	sheet, err := sheetimport.Parse(strings.NewReader(strings.Join(rows, "\n")), sheetimport.FormatCSV, 0)
	require.NoError(t, err)
	return sheet
}

// seedChain imports one country, state, city and pincode through the bulk importer
func seedChain(t *testing.T, ctx context.Context, s *storeServices, pin string) *locationapp.ResolvedLocation {
	t.Helper()

	_, err := s.importer.Import(ctx, locationapp.ImportCountries, parseCSV(t,
		"Country Name,ISO Code,Phone Code",
		"India,IN,+91",
	))
	require.NoError(t, err)
	countries, err := s.countries.List(ctx, locationapp.CountryListFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, countries.Items)
	countryID := countries.Items[0].ID

	_, err = s.importer.Import(ctx, locationapp.ImportStates, parseCSV(t,
		"Country Id,State Name,State Code",
		countryID.String()+",Karnataka,KA",
	))
	require.NoError(t, err)
	states, err := s.states.List(ctx, locationapp.StateListFilter{CountryID: &countryID})
	require.NoError(t, err)
	require.Len(t, states.Items, 1)
	stateID := states.Items[0].ID

	_, err = s.importer.Import(ctx, locationapp.ImportCities, parseCSV(t,
		"State Id,City Name",
		stateID.String()+",Bengaluru",
	))
	require.NoError(t, err)
	cities, err := s.cities.List(ctx, locationapp.CityListFilter{StateID: &stateID})
	require.NoError(t, err)
	require.Len(t, cities.Items, 1)

	result, err := s.importer.Import(ctx, locationapp.ImportPincodes, parseCSV(t,
		"City Id,Pincode,Area Name",
		cities.Items[0].ID.String()+","+pin+",Koramangala",
	))
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	resolved, err := s.resolver.Resolve(ctx, pin)
	require.NoError(t, err)
	return resolved
}

func TestLocationImportAndResolve_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	s := newStoreServices(testDB.DB, cache.NewInMemoryLocationCache(time.Minute))

	resolved := seedChain(t, ctx, s, "560034")
	assert.Equal(t, "Koramangala", resolved.AreaName)
	assert.Equal(t, "Bengaluru", resolved.CityName)
	assert.Equal(t, "Karnataka", resolved.StateName)
	assert.Equal(t, "India", resolved.CountryName)

	t.Run("re-import updates in place", func(t *testing.T) {
		result, err := s.importer.Import(ctx, locationapp.ImportPincodes, parseCSV(t,
			"City Id,Pincode,Area Name,Status",
			resolved.CityID.String()+",560034,Koramangala 4th Block,active",
			resolved.CityID.String()+",560095,Koramangala 6th Block,active",
			resolved.CityID.String()+",5600,Too Short,active",
			uuid.NewString()+",560001,Orphan,active",
		))
		require.NoError(t, err)
		assert.Equal(t, 4, result.TotalRows)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, 2, result.FailedRows)

		again, err := s.resolver.Resolve(ctx, "560034")
		require.NoError(t, err)
		assert.Equal(t, resolved.PincodeID, again.PincodeID)
		assert.Equal(t, "Koramangala 4th Block", again.AreaName, "import invalidates cached resolutions")
	})

	t.Run("unknown pincode", func(t *testing.T) {
		_, err := s.resolver.Resolve(ctx, "999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("parent in use cannot be deleted", func(t *testing.T) {
		err := s.cities.Delete(ctx, resolved.CityID)
		require.Error(t, err)

		_, err = s.cities.GetByID(ctx, resolved.CityID)
		assert.NoError(t, err)
	})
}

func TestLocationResolution_RedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	client := NewTestRedis(t)
	ctx := context.Background()
	redisCache := cache.NewRedisLocationCache(client, time.Minute, zap.NewNop())
	s := newStoreServices(testDB.DB, redisCache)

	resolved := seedChain(t, ctx, s, "400001")

	// second resolve is served from Redis
	_, err := s.resolver.Resolve(ctx, "400001")
	require.NoError(t, err)
	hits, _ := redisCache.Stats()
	assert.Positive(t, hits)

	area := "Fort"
	_, err = s.pincodes.Update(ctx, resolved.PincodeID, locationapp.UpdatePincodeRequest{AreaName: &area})
	require.NoError(t, err)

	updated, err := s.resolver.Resolve(ctx, "400001")
	require.NoError(t, err)
	assert.Equal(t, "Fort", updated.AreaName)
}

func TestAddressDefault_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	s := newStoreServices(testDB.DB, locationapp.NoopResolutionCache{})
	seedChain(t, ctx, s, "110001")

	customer := testutil.TestCustomer("asha")
	create := func(name string) *addressapp.AddressResponse {
		addr, err := s.addresses.Create(ctx, customer, addressapp.CreateAddressRequest{
			FullName:     name,
			Mobile:       "+919876543210",
			AddressLine1: "1 Janpath",
			PostalCode:   "110001",
		})
		require.NoError(t, err)
		return addr
	}
	countDefaults := func() int64 {
		var n int64
		require.NoError(t, testDB.DB.Raw("SELECT COUNT(*) FROM addresses WHERE user_id = ? AND is_default", customer.UserID).Scan(&n).Error)
		return n
	}

	first := create("Home")
	second := create("Office")
	assert.True(t, first.IsDefault)
	assert.False(t, second.IsDefault)
	assert.Equal(t, int64(1), countDefaults())

	_, err := s.addresses.SetDefault(ctx, customer, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countDefaults())

	t.Run("schema rejects a second default", func(t *testing.T) {
		err := testDB.DB.Exec("UPDATE addresses SET is_default = TRUE WHERE id = ?", first.ID).Error
		assert.Error(t, err)
	})

	t.Run("deleting the default promotes the remaining address", func(t *testing.T) {
		require.NoError(t, s.addresses.Delete(ctx, customer, second.ID))
		got, err := s.addresses.GetByID(ctx, customer, first.ID)
		require.NoError(t, err)
		assert.True(t, got.IsDefault)
		assert.Equal(t, int64(1), countDefaults())
	})

	t.Run("location in use by an address cannot be deleted", func(t *testing.T) {
		got, err := s.addresses.GetByID(ctx, customer, first.ID)
		require.NoError(t, err)
		assert.Error(t, s.pincodes.Delete(ctx, got.PincodeID))
	})
}

func TestInventoryAdjust_Concurrent_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	s := newStoreServices(testDB.DB, locationapp.NoopResolutionCache{})

	category, err := s.categories.Create(ctx, catalogapp.CreateCategoryRequest{Name: "Tea"})
	require.NoError(t, err)
	product, err := s.products.Create(ctx, catalogapp.CreateProductRequest{
		Name:       "Assam Tea 250g",
		SKU:        "TEA-250",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("320"),
	})
	require.NoError(t, err)

	const stock = 20
	inv, err := s.inventory.Create(ctx, inventoryapp.CreateInventoryRequest{ProductID: product.ID, Quantity: stock, LowStockThreshold: 5})
	require.NoError(t, err)

	admin := testutil.TestAdmin()
	const workers = 30
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
		unexpected   []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.inventory.Adjust(ctx, admin, inv.ID, inventoryapp.AdjustStockRequest{Delta: -1, Reason: fmt.Sprintf("order %d", i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case isDomainCode(err, shared.CodeInsufficientStock):
				insufficient++
			default:
				unexpected = append(unexpected, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, unexpected)
	assert.Equal(t, stock, succeeded)
	assert.Equal(t, workers-stock, insufficient)

	final, err := s.inventory.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity)
	assert.True(t, final.IsLowStock)

	var movements int64
	require.NoError(t, testDB.DB.Raw("SELECT COUNT(*) FROM stock_movements WHERE inventory_id = ?", inv.ID).Scan(&movements).Error)
	assert.Equal(t, int64(stock), movements)
}

func isDomainCode(err error, code string) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == code
}
