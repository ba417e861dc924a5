package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressapp "github.com/storefront/backend/internal/application/address"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	couponapp "github.com/storefront/backend/internal/application/coupon"
	identityapp "github.com/storefront/backend/internal/application/identity"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/application/media"
	paymentapp "github.com/storefront/backend/internal/application/payment"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testAdminPassword = "correct-horse-battery"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var (
	adminCaller    = identity.Principal{UserID: uuid.MustParse("0b8f3a4e-8a4a-4c7e-9d55-1f2a3b4c5d6e"), Username: "admin", Role: identity.RoleAdmin}
	customerCaller = identity.Principal{UserID: uuid.MustParse("7c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e4f"), Username: "shopper", Role: identity.RoleCustomer}
)

// testEnv wires real services over an in-memory SQLite database
type testEnv struct {
	db  *gorm.DB
	ctx context.Context
	jwt *auth.JWTService

	countries *locationapp.CountryService
	states    *locationapp.StateService
	cities    *locationapp.CityService
	pincodes  *locationapp.PincodeService
	resolver  *locationapp.ResolverService
	importer  *locationapp.ImportService

	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
	content    *catalogapp.ContentService

	coupons   *couponapp.CouponService
	gateways  *paymentapp.GatewayService
	inventory *inventoryapp.InventoryService
	addresses *addressapp.AddressService
	quotes    *checkoutapp.QuoteService
	uploads   *media.UploadService
	authSvc   *identityapp.AuthService
	blacklist *auth.InMemoryTokenBlacklist
	objects   *storage.StubObjectStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
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

	log := zap.NewNop()
	locCache := cache.NewInMemoryLocationCache(time.Minute)

	countryRepo := persistence.NewGormCountryRepository(db)
	stateRepo := persistence.NewGormStateRepository(db)
	cityRepo := persistence.NewGormCityRepository(db)
	pincodeRepo := persistence.NewGormPincodeRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	movementRepo := persistence.NewGormStockMovementRepository(db)

	env := &testEnv{
		db:  db,
		ctx: context.Background(),
		jwt: auth.NewJWTService(config.JWTConfig{Secret: "handler-test-secret", Issuer: "storefront-test"}),
	}
	env.countries = locationapp.NewCountryService(countryRepo, locCache, log)
	env.states = locationapp.NewStateService(stateRepo, countryRepo, locCache, log)
	env.cities = locationapp.NewCityService(cityRepo, stateRepo, locCache, log)
	env.pincodes = locationapp.NewPincodeService(pincodeRepo, cityRepo, locCache, log)
	env.resolver = locationapp.NewResolverService(pincodeRepo, cityRepo, stateRepo, countryRepo, locCache, log)
	env.importer = locationapp.NewImportService(persistence.NewGormLocationTransactionScope(db), locCache, locationapp.NoopImportRecorder{}, log)

	env.categories = catalogapp.NewCategoryService(categoryRepo, productRepo, log)
	env.products = catalogapp.NewProductService(productRepo, categoryRepo, log)
	env.content = catalogapp.NewContentService(productRepo,
		persistence.NewGormProductDetailRepository(db),
		persistence.NewGormProductFAQRepository(db),
		persistence.NewGormProductReviewRepository(db),
		log)

	env.coupons = couponapp.NewCouponService(persistence.NewGormCouponRepository(db), log)
	env.gateways = paymentapp.NewGatewayService(persistence.NewGormPaymentGatewayRepository(db), log)
	env.inventory = inventoryapp.NewInventoryService(inventoryRepo, movementRepo, productRepo,
		persistence.NewGormInventoryTransactionScope(db), log)
	env.addresses = addressapp.NewAddressService(persistence.NewGormAddressRepository(db),
		persistence.NewGormAddressTransactionScope(db), env.resolver, log)
	env.quotes = checkoutapp.NewQuoteService(productRepo, inventoryRepo, env.addresses, env.gateways, env.coupons, log)

	env.objects = storage.NewStubObjectStorage("https://cdn.test")
	env.uploads = media.NewUploadService(env.objects, 0, log)

	hash, err := identity.HashPassword(testAdminPassword)
	require.NoError(t, err)
	admin, err := identity.NewAdminAccount("admin", hash)
	require.NoError(t, err)
	env.blacklist = auth.NewInMemoryTokenBlacklist()
	env.authSvc = identityapp.NewAuthService(admin, env.jwt, env.blacklist, log)
	return env
}

// router returns an engine whose requests run as caller. A nil caller is anonymous.
func (e *testEnv) router(caller *identity.Principal) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if caller != nil {
		p := *caller
		r.Use(func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, &auth.Claims{
				UserID:   p.UserID.String(),
				Username: p.Username,
				Role:     string(p.Role),
			})
			c.Next()
		})
	}
	return r
}

func (e *testEnv) importHandler() *LocationImportHandler {
	return NewLocationImportHandler(e.importer, DefaultMaxImportFileSize)
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, _ := json.Marshal(b)
			reader = bytes.NewBuffer(payload)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performMultipart(t *testing.T, r http.Handler, method, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       T               `json:"data"`
	Pagination *dto.Pagination `json:"pagination"`
	Error      *dto.ErrorInfo  `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// seedLocation creates a country, state, city and pincode chain
func (e *testEnv) seedLocation(t *testing.T, pin string) *locationapp.ResolvedLocation {
	t.Helper()
	country, err := e.countries.Create(e.ctx, locationapp.CreateCountryRequest{Name: "India " + pin, ISOCode: "IN"})
	require.NoError(t, err)
	state, err := e.states.Create(e.ctx, locationapp.CreateStateRequest{CountryID: country.ID, Name: "Karnataka"})
	require.NoError(t, err)
	city, err := e.cities.Create(e.ctx, locationapp.CreateCityRequest{StateID: state.ID, Name: "Bengaluru"})
	require.NoError(t, err)
	_, err = e.pincodes.Create(e.ctx, locationapp.CreatePincodeRequest{CityID: city.ID, Pincode: pin, AreaName: "Koramangala"})
	require.NoError(t, err)
	resolved, err := e.resolver.Resolve(e.ctx, pin)
	require.NoError(t, err)
	return resolved
}

func (e *testEnv) seedProduct(t *testing.T, sku string, price string, qtyOffers string) *catalogapp.ProductResponse {
	t.Helper()
	category, err := e.categories.Create(e.ctx, catalogapp.CreateCategoryRequest{Name: "Category " + sku})
	require.NoError(t, err)
	req := catalogapp.CreateProductRequest{
		Name:       "Product " + sku,
		SKU:        sku,
		CategoryID: category.ID,
		Price:      mustDecimal(t, price),
	}
	if qtyOffers != "" {
		req.QtyOffers = json.RawMessage(qtyOffers)
	}
	product, err := e.products.Create(e.ctx, req)
	require.NoError(t, err)
	return product
}

func mustDecimal(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

func jsonDecode(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
