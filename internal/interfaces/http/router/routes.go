package router

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler the storefront API exposes
type Handlers struct {
	Auth           *handler.AuthHandler
	System         *handler.SystemHandler
	Country        *handler.CountryHandler
	State          *handler.StateHandler
	City           *handler.CityHandler
	Pincode        *handler.PincodeHandler
	Resolver       *handler.ResolverHandler
	LocationImport *handler.LocationImportHandler
	Category       *handler.CategoryHandler
	Product        *handler.ProductHandler
	Content        *handler.ProductContentHandler
	Coupon         *handler.CouponHandler
	PaymentGateway *handler.PaymentGatewayHandler
	Inventory      *handler.InventoryHandler
	Address        *handler.AddressHandler
	Checkout       *handler.CheckoutHandler
	Upload         *handler.UploadHandler
}

// Guards holds the access middleware attached to route groups.
//
// Authenticate rejects requests without a valid bearer token. OptionalAuth
// reads a token when present. Admin runs after Authenticate and rejects
// non-admin callers. LoginLimit throttles the login endpoint.
type Guards struct {
	Authenticate gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	Admin        gin.HandlerFunc
	LoginLimit   gin.HandlerFunc
}

func (g Guards) public() []gin.HandlerFunc {
	return nonNil(g.OptionalAuth)
}

func (g Guards) customer() []gin.HandlerFunc {
	return nonNil(g.Authenticate)
}

func (g Guards) admin() []gin.HandlerFunc {
	return nonNil(g.Authenticate, g.Admin)
}

func nonNil(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// StorefrontRoutes builds the route groups of the storefront API. Groups
// sharing a prefix are split by audience so each carries its own guards.
func StorefrontRoutes(h Handlers, g Guards) []RouteRegistrar {
	return []RouteRegistrar{
		systemRoutes(h),
		authRoutes(h, g),
		locationRoutes(h, g),
		adminLocationRoutes(h, g),
		catalogRoutes(h, g),
		adminCatalogRoutes(h, g),
		commerceRoutes(h, g),
		adminCommerceRoutes(h, g),
		customerRoutes(h, g),
	}
}

func systemRoutes(h Handlers) *DomainGroup {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)
	system.GET("/system/ping", h.System.Ping)
	return system
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", append(nonNil(g.LoginLimit), h.Auth.Login)...)

	session := auth.Group("auth-session", "")
	session.Use(g.customer()...)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.Me)
	return auth
}

type locationLevel struct {
	name   string
	prefix string
	kind   locationapp.ImportKind
	list   gin.HandlerFunc
	get    gin.HandlerFunc
	create gin.HandlerFunc
	update gin.HandlerFunc
	remove gin.HandlerFunc
}

func locationLevels(h Handlers) []locationLevel {
	return []locationLevel{
		{"countries", "/countries", locationapp.ImportCountries, h.Country.List, h.Country.GetByID, h.Country.Create, h.Country.Update, h.Country.Delete},
		{"states", "/states", locationapp.ImportStates, h.State.List, h.State.GetByID, h.State.Create, h.State.Update, h.State.Delete},
		{"cities", "/cities", locationapp.ImportCities, h.City.List, h.City.GetByID, h.City.Create, h.City.Update, h.City.Delete},
		{"pincodes", "/pincodes", locationapp.ImportPincodes, h.Pincode.List, h.Pincode.GetByID, h.Pincode.Create, h.Pincode.Update, h.Pincode.Delete},
	}
}

// MultipartPaths lists the routes, relative to the API base path, that take
// multipart/form-data file uploads.
func MultipartPaths() []string {
	paths := []string{"/uploads/images"}
	for _, prefix := range []string{"/countries", "/states", "/cities", "/pincodes"} {
		paths = append(paths, "/locations"+prefix, "/locations"+prefix+"/import")
	}
	return paths
}

func locationRoutes(h Handlers, g Guards) *DomainGroup {
	locations := NewDomainGroup("locations", "/locations")
	locations.Use(g.public()...)
	locations.GET("/resolve/:pincode", h.Resolver.Resolve)
	for _, level := range locationLevels(h) {
		sub := locations.Group(level.name, level.prefix)
		sub.GET("", level.list)
		sub.GET("/:id", level.get)
	}
	return locations
}

// adminLocationRoutes accepts the target id in the path, the query string or
// the body, so mutations are bound on both the collection and item paths.
func adminLocationRoutes(h Handlers, g Guards) *DomainGroup {
	locations := NewDomainGroup("locations-admin", "/locations")
	locations.Use(g.admin()...)
	for _, level := range locationLevels(h) {
		sub := locations.Group(level.name+"-admin", level.prefix)
		sub.POST("", level.create)
		sub.POST("/import", h.LocationImport.Import(level.kind))
		sub.Update("", level.update)
		sub.Update("/:id", level.update)
		sub.DELETE("", level.remove)
		sub.DELETE("/:id", level.remove)
	}
	return locations
}

func catalogRoutes(h Handlers, g Guards) *DomainGroup {
	catalog := NewDomainGroup("catalog", "")
	catalog.Use(g.public()...)

	categories := catalog.Group("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.GetByID)

	products := catalog.Group("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/slug/:slug", h.Product.GetBySlug)
	products.GET("/:id", h.Product.GetByID)
	products.GET("/:id/detail", h.Content.GetDetail)
	products.GET("/:id/faqs", h.Content.ListFAQs)
	products.GET("/:id/reviews", h.Content.ListReviews)
	products.POST("/:id/reviews", h.Content.CreateReview)
	return catalog
}

func adminCatalogRoutes(h Handlers, g Guards) *DomainGroup {
	catalog := NewDomainGroup("catalog-admin", "")
	catalog.Use(g.admin()...)

	categories := catalog.Group("categories-admin", "/categories")
	categories.POST("", h.Category.Create)
	categories.Update("/:id", h.Category.Update)
	categories.DELETE("/:id", h.Category.Delete)

	products := catalog.Group("products-admin", "/products")
	products.POST("", h.Product.Create)
	products.Update("/:id", h.Product.Update)
	products.DELETE("/:id", h.Product.Delete)
	products.PUT("/:id/detail", h.Content.UpsertDetail)
	products.POST("/:id/faqs", h.Content.CreateFAQ)
	products.Update("/:id/faqs/:faqId", h.Content.UpdateFAQ)
	products.DELETE("/:id/faqs/:faqId", h.Content.DeleteFAQ)
	products.PATCH("/:id/reviews/:reviewId", h.Content.ModerateReview)
	products.DELETE("/:id/reviews/:reviewId", h.Content.DeleteReview)
	return catalog
}

func commerceRoutes(h Handlers, g Guards) *DomainGroup {
	commerce := NewDomainGroup("commerce", "")
	commerce.Use(g.public()...)
	commerce.GET("/coupons/validate", h.Coupon.Validate)
	commerce.GET("/payment-gateways/active", h.PaymentGateway.Active)
	return commerce
}

func adminCommerceRoutes(h Handlers, g Guards) *DomainGroup {
	commerce := NewDomainGroup("commerce-admin", "")
	commerce.Use(g.admin()...)

	coupons := commerce.Group("coupons", "/coupons")
	coupons.GET("", h.Coupon.List)
	coupons.GET("/:id", h.Coupon.GetByID)
	coupons.POST("", h.Coupon.Create)
	coupons.Update("/:id", h.Coupon.Update)
	coupons.DELETE("/:id", h.Coupon.Delete)

	gateways := commerce.Group("payment-gateways", "/payment-gateways")
	gateways.GET("", h.PaymentGateway.List)
	gateways.GET("/:id", h.PaymentGateway.GetByID)
	gateways.POST("", h.PaymentGateway.Create)
	gateways.Update("/:id", h.PaymentGateway.Update)
	gateways.DELETE("/:id", h.PaymentGateway.Delete)

	inventory := commerce.Group("inventory", "/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.GET("/:id", h.Inventory.GetByID)
	inventory.POST("", h.Inventory.Create)
	inventory.Update("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)
	inventory.POST("/:id/adjust", h.Inventory.Adjust)
	inventory.GET("/:id/movements", h.Inventory.Movements)

	commerce.POST("/uploads/images", h.Upload.UploadImage)
	commerce.DELETE("/uploads/images", h.Upload.DeleteImage)
	return commerce
}

func customerRoutes(h Handlers, g Guards) *DomainGroup {
	customer := NewDomainGroup("customer", "")
	customer.Use(g.customer()...)

	addresses := customer.Group("addresses", "/addresses")
	addresses.GET("", h.Address.List)
	addresses.GET("/:id", h.Address.GetByID)
	addresses.POST("", h.Address.Create)
	addresses.Update("", h.Address.Update)
	addresses.Update("/:id", h.Address.Update)
	addresses.POST("/:id/default", h.Address.SetDefault)
	addresses.DELETE("", h.Address.Delete)
	addresses.DELETE("/:id", h.Address.Delete)

	customer.POST("/checkout/quote", h.Checkout.Quote)
	return customer
}

// Describe lists every storefront route, sorted, for startup logging
func Describe(registrars []RouteRegistrar) []RouteInfo {
	var routes []RouteInfo
	for _, r := range registrars {
		if dg, ok := r.(*DomainGroup); ok {
			routes = append(routes, dg.Routes()...)
		}
	}
	SortRoutes(routes)
	return routes
}
