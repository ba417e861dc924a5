package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func TestRouter_BasePath(t *testing.T) {
	assert.Equal(t, "/api/v1", NewRouter(gin.New()).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(gin.New(), WithAPIVersion("v2")).BasePath())
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	coupons := NewDomainGroup("coupons", "/coupons").
		GET("", named("list")).
		GET("/:id", named("get"))
	locations := NewDomainGroup("locations", "/locations")
	locations.Group("resolver", "/resolve").GET("/:pincode", named("resolve"))

	NewRouter(engine, WithAPIVersion("v2")).Register(coupons).Register(locations).Setup()

	tests := []struct {
		path string
		want string
	}{
		{"/api/v2/coupons", "list"},
		{"/api/v2/coupons/42", "get"},
		{"/api/v2/locations/resolve/560034", "resolve"},
	}
	for _, tt := range tests {
		w := serve(engine, http.MethodGet, tt.path)
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Equal(t, tt.want, w.Body.String())
	}
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/coupons").Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	var calls []string
	guard := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			calls = append(calls, name)
			if c.GetHeader("X-Block") == name {
				c.AbortWithStatus(http.StatusForbidden)
			}
		}
	}

	admin := NewDomainGroup("admin", "/admin").Use(guard("outer"))
	admin.Group("inventory", "/inventory").Use(guard("inner")).POST("/:id/adjust", named("adjust"))
	NewRouter(engine).Register(admin).Setup()

	w := serve(engine, http.MethodPost, "/api/v1/admin/inventory/9/adjust")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"outer", "inner"}, calls)

	calls = nil
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/inventory/9/adjust", nil)
	req.Header.Set("X-Block", "outer")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"outer"}, calls)
}

func TestDomainGroup_Verbs(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("addresses", "/addresses").
		POST("", named("create")).
		Update("/:id", named("update")).
		DELETE("/:id", named("delete"))
	NewRouter(engine).Register(g).Setup()

	for method, want := range map[string]string{
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodPatch:  "update",
		http.MethodDelete: "delete",
	} {
		path := "/api/v1/addresses/1"
		if method == http.MethodPost {
			path = "/api/v1/addresses"
		}
		w := serve(engine, method, path)
		require.Equal(t, http.StatusOK, w.Code, method)
		assert.Equal(t, want, w.Body.String(), method)
	}
	assert.Equal(t, "addresses", g.Name())
	assert.Equal(t, "/addresses", g.Prefix())
}

func TestDomainGroup_Routes(t *testing.T) {
	g := NewDomainGroup("catalog", "/products").
		GET("", named("list")).
		Update("/:id", named("update"))
	g.Group("reviews", "/:id/reviews").POST("", named("review"))

	routes := g.Routes()
	SortRoutes(routes)

	assert.Equal(t, []RouteInfo{
		{Group: "catalog", Method: http.MethodGet, Path: "/products"},
		{Group: "catalog", Method: http.MethodPatch, Path: "/products/:id"},
		{Group: "catalog", Method: http.MethodPut, Path: "/products/:id"},
		{Group: "reviews", Method: http.MethodPost, Path: "/products/:id/reviews"},
	}, routes)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/products", joinPath("/", "/products"))
	assert.Equal(t, "/products", joinPath("/products", ""))
	assert.Equal(t, "/products/", joinPath("/", "/products/"))
	assert.Equal(t, "/locations/resolve/:pincode", joinPath("/locations", "resolve/:pincode"))
}
