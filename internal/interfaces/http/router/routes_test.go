package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers() Handlers {
	return Handlers{
		Auth:           &handler.AuthHandler{},
		System:         handler.NewSystemHandler("test", nil),
		Country:        &handler.CountryHandler{},
		State:          &handler.StateHandler{},
		City:           &handler.CityHandler{},
		Pincode:        &handler.PincodeHandler{},
		Resolver:       &handler.ResolverHandler{},
		LocationImport: &handler.LocationImportHandler{},
		Category:       &handler.CategoryHandler{},
		Product:        &handler.ProductHandler{},
		Content:        &handler.ProductContentHandler{},
		Coupon:         &handler.CouponHandler{},
		PaymentGateway: &handler.PaymentGatewayHandler{},
		Inventory:      &handler.InventoryHandler{},
		Address:        &handler.AddressHandler{},
		Checkout:       &handler.CheckoutHandler{},
		Upload:         &handler.UploadHandler{},
	}
}

func setupStorefront(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "router-test-secret", Issuer: "test"})
	authn := middleware.NewAuthenticator(jwtService, nil)
	guards := Guards{
		Authenticate: authn.Required(),
		OptionalAuth: authn.Optional(),
		Admin:        middleware.RequireAdmin(),
	}

	engine := gin.New()
	r := NewRouter(engine)
	require.NotPanics(t, func() {
		r.Register(StorefrontRoutes(testHandlers(), guards)...).Setup()
	})
	return engine, jwtService
}

func bearer(t *testing.T, svc *auth.JWTService, role identity.Role) string {
	t.Helper()
	token, err := svc.GenerateAccessToken(identity.Principal{UserID: uuid.New(), Username: "u", Role: role})
	require.NoError(t, err)
	return "Bearer " + token.Token
}

func TestStorefrontRoutesRegistered(t *testing.T) {
	engine, _ := setupStorefront(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/health",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"POST /api/v1/auth/logout",
		"GET /api/v1/locations/resolve/:pincode",
		"GET /api/v1/locations/countries",
		"GET /api/v1/locations/pincodes/:id",
		"POST /api/v1/locations/states",
		"POST /api/v1/locations/cities/import",
		"PUT /api/v1/locations/countries",
		"PATCH /api/v1/locations/pincodes/:id",
		"DELETE /api/v1/locations/states",
		"DELETE /api/v1/locations/cities/:id",
		"GET /api/v1/products/slug/:slug",
		"GET /api/v1/products/:id/reviews",
		"POST /api/v1/products/:id/reviews",
		"PATCH /api/v1/products/:id/reviews/:reviewId",
		"PUT /api/v1/products/:id/faqs/:faqId",
		"PUT /api/v1/products/:id/detail",
		"GET /api/v1/coupons/validate",
		"GET /api/v1/coupons/:id",
		"GET /api/v1/payment-gateways/active",
		"POST /api/v1/inventory/:id/adjust",
		"GET /api/v1/inventory/:id/movements",
		"POST /api/v1/addresses/:id/default",
		"POST /api/v1/checkout/quote",
		"POST /api/v1/uploads/images",
		"DELETE /api/v1/uploads/images",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
}

func TestMultipartPathsAreRegistered(t *testing.T) {
	engine, _ := setupStorefront(t)

	posts := make(map[string]bool)
	for _, route := range engine.Routes() {
		if route.Method == http.MethodPost {
			posts[route.Path] = true
		}
	}

	paths := NewRouter(gin.New()).Paths(MultipartPaths()...)
	require.Len(t, paths, 9)
	for _, p := range paths {
		assert.True(t, posts[p], "multipart path %s should be a POST route", p)
	}
	assert.NotContains(t, paths, "/api/v1/auth/login")
}

func TestStorefrontRoutesGuards(t *testing.T) {
	engine, jwtService := setupStorefront(t)
	customer := bearer(t, jwtService, identity.RoleCustomer)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"public health", http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{"public ping with bad token", http.MethodGet, "/api/v1/system/ping", "Bearer nope", http.StatusOK},
		{"admin route without token", http.MethodPost, "/api/v1/locations/countries", "", http.StatusUnauthorized},
		{"admin route as customer", http.MethodPost, "/api/v1/locations/countries", customer, http.StatusForbidden},
		{"admin import as customer", http.MethodPost, "/api/v1/locations/pincodes/import", customer, http.StatusForbidden},
		{"coupon list as customer", http.MethodGet, "/api/v1/coupons", customer, http.StatusForbidden},
		{"inventory adjust without token", http.MethodPost, "/api/v1/inventory/" + uuid.NewString() + "/adjust", "", http.StatusUnauthorized},
		{"upload as customer", http.MethodPost, "/api/v1/uploads/images", customer, http.StatusForbidden},
		{"image delete as customer", http.MethodDelete, "/api/v1/uploads/images?key=images/a.png", customer, http.StatusForbidden},
		{"image delete without token", http.MethodDelete, "/api/v1/uploads/images?key=images/a.png", "", http.StatusUnauthorized},
		{"addresses without token", http.MethodGet, "/api/v1/addresses", "", http.StatusUnauthorized},
		{"quote without token", http.MethodPost, "/api/v1/checkout/quote", "", http.StatusUnauthorized},
		{"me without token", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDescribe(t *testing.T) {
	routes := Describe(StorefrontRoutes(testHandlers(), Guards{}))
	require.NotEmpty(t, routes)

	for i := 1; i < len(routes); i++ {
		prev, cur := routes[i-1], routes[i]
		assert.True(t, prev.Path < cur.Path || (prev.Path == cur.Path && prev.Method <= cur.Method),
			"routes out of order at %d", i)
	}

	assert.Contains(t, routes, RouteInfo{Group: "addresses", Method: http.MethodPost, Path: "/addresses/:id/default"})
	assert.Contains(t, routes, RouteInfo{Group: "system", Method: http.MethodGet, Path: "/health"})
}
