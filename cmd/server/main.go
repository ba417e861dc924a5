package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/storefront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init --v3.1 -g cmd/server/main.go -d ../../ -o ../../docs

//	@title			Storefront Backend API
//	@version		1.0
//	@description	Storefront and back-office API: locations, catalog, coupons, payment gateways, inventory, addresses and checkout quotes

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OpenTelemetry logs are teed into zap when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		log, err = logger.New(logCfg, logProvider.Core(zap.InfoLevel))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Initialize database connection
	db, err := persistence.NewDatabase(ctx, &cfg.Database,
		persistence.WithSQLLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	dbInstrumentation, err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, meterProvider.Meter("storefront.db"), log)
	if err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	storeMetrics, err := telemetry.NewStoreMetrics(meterProvider.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	// Redis backs the pincode cache and the token blacklist; both fall back
	// to process memory when it is disabled.
	var (
		redisClient     *redis.Client
		resolutionCache locationapp.ResolutionCache
		tokenBlacklist  auth.TokenBlacklist
		cacheStats      telemetry.CacheStatsFunc
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		redisCache := cache.NewRedisLocationCache(redisClient, cfg.Redis.CacheTTL, log)
		resolutionCache, cacheStats = redisCache, redisCache.Stats
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		memCache := cache.NewInMemoryLocationCache(cfg.Redis.CacheTTL)
		resolutionCache, cacheStats = memCache, memCache.Stats
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled, using in-process cache and token blacklist")
	}
	if _, err := storeMetrics.ObserveCache("pincode_resolution", cacheStats); err != nil {
		log.Warn("Cache metrics disabled", zap.Error(err))
	}

	// Object storage for uploaded images
	var objectStorage media.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to configure object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		objectStorage = storage.NewStubObjectStorage(cfg.Storage.LocalBaseURL)
		log.Warn("Object storage disabled, uploads are kept in memory")
	}

	// Initialize repositories
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	stateRepo := persistence.NewGormStateRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	pincodeRepo := persistence.NewGormPincodeRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)

	// Initialize application services
	countryService := locationapp.NewCountryService(countryRepo, resolutionCache, log)
	stateService := locationapp.NewStateService(stateRepo, countryRepo, resolutionCache, log)
	cityService := locationapp.NewCityService(cityRepo, stateRepo, resolutionCache, log)
	pincodeService := locationapp.NewPincodeService(pincodeRepo, cityRepo, resolutionCache, log)
	resolverService := locationapp.NewResolverService(pincodeRepo, cityRepo, stateRepo, countryRepo, resolutionCache, log)
	importService := locationapp.NewImportService(persistence.NewGormLocationTransactionScope(db.DB), resolutionCache, storeMetrics, log)

	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	contentService := catalogapp.NewContentService(productRepo,
		persistence.NewGormProductDetailRepository(db.DB),
		persistence.NewGormProductFAQRepository(db.DB),
		persistence.NewGormProductReviewRepository(db.DB),
		log)

	couponService := couponapp.NewCouponService(persistence.NewGormCouponRepository(db.DB), log)
	gatewayService := paymentapp.NewGatewayService(persistence.NewGormPaymentGatewayRepository(db.DB), log)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo,
		persistence.NewGormStockMovementRepository(db.DB), productRepo,
		persistence.NewGormInventoryTransactionScope(db.DB), log)
	addressService := addressapp.NewAddressService(persistence.NewGormAddressRepository(db.DB),
		persistence.NewGormAddressTransactionScope(db.DB), resolverService, log)
	quoteService := checkoutapp.NewQuoteService(productRepo, inventoryRepo, addressService, gatewayService, couponService, log)
	uploadService := media.NewUploadService(objectStorage, cfg.Upload.MaxImageSize, log)

	// Identity: a single configured back-office account
	jwtService := auth.NewJWTService(cfg.JWT)
	var admin *identity.AdminAccount
	if cfg.Admin.Username != "" {
		admin, err = identity.NewAdminAccount(cfg.Admin.Username, cfg.Admin.PasswordHash)
		if err != nil {
			log.Fatal("Invalid admin account configuration", zap.Error(err))
		}
	} else {
		log.Warn("No admin account configured, admin login is disabled")
	}
	authService := identityapp.NewAuthService(admin, jwtService, tokenBlacklist, log)

	// Initialize HTTP handlers
	importHandler := handler.NewLocationImportHandler(importService, cfg.Import.MaxFileSize)
	healthChecks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	systemHandler := handler.NewSystemHandler(version, healthChecks).WithPoolStats(func() (any, error) {
		return db.Stats()
	})
	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		System:         systemHandler,
		Country:        handler.NewCountryHandler(countryService, importHandler),
		State:          handler.NewStateHandler(stateService, importHandler),
		City:           handler.NewCityHandler(cityService, importHandler),
		Pincode:        handler.NewPincodeHandler(pincodeService, importHandler),
		Resolver:       handler.NewResolverHandler(resolverService),
		LocationImport: importHandler,
		Category:       handler.NewCategoryHandler(categoryService),
		Product:        handler.NewProductHandler(productService),
		Content:        handler.NewProductContentHandler(contentService),
		Coupon:         handler.NewCouponHandler(couponService),
		PaymentGateway: handler.NewPaymentGatewayHandler(gatewayService),
		Inventory:      handler.NewInventoryHandler(inventoryService),
		Address:        handler.NewAddressHandler(addressService),
		Checkout:       handler.NewCheckoutHandler(quoteService),
		Upload:         handler.NewUploadHandler(uploadService),
	}

	// Setup Gin
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanAnnotator())
	if meterProvider.IsEnabled() {
		httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("http.server"))
		if err != nil {
			log.Warn("HTTP metrics disabled", zap.Error(err))
		} else {
			engine.Use(httpMetrics)
		}
	}
	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling(middleware.DefaultProfilingSkip...))
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.AccessLog(log, "/health"))
	secureConfig := middleware.DefaultSecurityConfig()
	if cfg.App.IsProduction() {
		secureConfig.HSTSMaxAge = 365 * 24 * time.Hour
		secureConfig.HSTSIncludeSubdomains = true
	}
	engine.Use(middleware.SecureWithConfig(secureConfig))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxMultipartSize, r.Paths(router.MultipartPaths()...)...))

	if cfg.HTTP.RateLimitEnabled {
		limiter, stop := newRateLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer stop()
		engine.Use(middleware.RateLimit(limiter))
	}

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authn := middleware.NewAuthenticator(jwtService, tokenBlacklist)
	guards := router.Guards{
		Authenticate: authn.Required(),
		OptionalAuth: authn.Optional(),
		Admin:        middleware.RequireAdmin(),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter, stop := newRateLimiter(redisClient, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer stop()
		guards.LoginLimit = middleware.LoginRateLimit(limiter)
	}

	registrars := router.StorefrontRoutes(handlers, guards)
	r.Register(registrars...).Setup()
	for _, route := range router.Describe(registrars) {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", r.BasePath()+route.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := dbInstrumentation.Close(); err != nil {
		log.Warn("Error removing database instrumentation", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing traces", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runMigrations applies the embedded schema migrations
func runMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared connection pool.
	return m.Up()
}

// newRateLimiter shares counters through Redis when it is configured.
func newRateLimiter(client *redis.Client, limit int, window time.Duration) (middleware.Limiter, func()) {
	if client != nil {
		return cache.NewRedisRateLimiter(client, limit, window), func() {}
	}
	l := cache.NewMemoryRateLimiter(limit, window)
	return l, l.Stop
}
