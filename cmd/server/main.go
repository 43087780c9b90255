package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bookingapp "github.com/growbro/backend/internal/application/booking"
	catalogapp "github.com/growbro/backend/internal/application/catalog"
	inventoryapp "github.com/growbro/backend/internal/application/inventory"
	"github.com/growbro/backend/internal/infrastructure/auth"
	"github.com/growbro/backend/internal/infrastructure/cache"
	"github.com/growbro/backend/internal/infrastructure/config"
	"github.com/growbro/backend/internal/infrastructure/logger"
	"github.com/growbro/backend/internal/infrastructure/persistence"
	"github.com/growbro/backend/internal/infrastructure/storage"
	"github.com/growbro/backend/internal/infrastructure/telemetry"
	"github.com/growbro/backend/internal/interfaces/http/handler"
	"github.com/growbro/backend/internal/interfaces/http/middleware"
	"github.com/growbro/backend/internal/interfaces/http/router"

	_ "github.com/growbro/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Growbro Backend API
//	@version		1.0
//	@description	Multi-tenant small-business backend: catalog with variant matrices, inventory, and bookings

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting growbro backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry: tracer, meter, log bridge, continuous profiler
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownWithTimeout(tracerProvider.Shutdown, log, "tracer provider")

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownWithTimeout(meterProvider.Shutdown, log, "meter provider")

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize logger provider", zap.Error(err))
	}
	defer shutdownWithTimeout(loggerProvider.Shutdown, log, "logger provider")

	if cfg.Telemetry.Enabled {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider, zapcore.InfoLevel)
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller())
		log.Info("log export to collector enabled")
	}

	if cfg.Telemetry.ProfilingEnabled {
		profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
			Enabled:         true,
			ServerAddress:   cfg.Telemetry.PyroscopeEndpoint,
			ApplicationName: cfg.Telemetry.ServiceName,
		}, log)
		if err != nil {
			log.Warn("failed to start profiler", zap.Error(err))
		} else {
			defer func() {
				if err := profiler.Stop(); err != nil {
					log.Warn("failed to stop profiler", zap.Error(err))
				}
			}()
			if err := tracerProvider.EnableSpanProfiles(); err != nil {
				log.Warn("failed to enable span profiles", zap.Error(err))
			}
		}
	}

	// Database with zap-backed gorm logging and query tracing
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	resourceRepo := persistence.NewGormResourceRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Object storage for payment proofs
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Booking.ProofUploadExpiry),
	)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		log.Fatal("failed to ensure storage bucket", zap.Error(err))
	}

	// Idempotency store: redis, with in-memory fallback for development
	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("failed to initialize idempotency store", zap.Error(err))
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, variantRepo)
	variantService := catalogapp.NewVariantService(productRepo, variantRepo, txScope)
	inventoryService := inventoryapp.NewInventoryService(warehouseRepo, stockItemRepo, movementRepo)
	bookingService := bookingapp.NewBookingService(resourceRepo, reservationRepo, objectStorage, idempotencyStore, bookingapp.ServiceConfig{
		PaymentHold:       cfg.Booking.PaymentHold,
		ProofUploadExpiry: cfg.Booking.ProofUploadExpiry,
		CheckInDedupeTTL:  cfg.Booking.CheckInDedupeTTL,
		ExpireBatchSize:   cfg.Booking.ExpireBatchSize,
	})

	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.HTTPMetrics(meterProvider))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public check-in endpoint, outside the authenticated API group
	engine.POST("/api/v1/bookings/check-in", bookingHandler.CheckIn)

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT guard for the versioned API group
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthWithConfig(jwtConfig))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Archive)
	catalogRoutes.POST("/products/:id/restore", productHandler.Restore)
	catalogRoutes.POST("/products/:id/variants/preview", variantHandler.Preview)
	catalogRoutes.POST("/products/:id/variants/apply", variantHandler.Apply)
	catalogRoutes.GET("/products/:id/variants", variantHandler.ListByProduct)
	catalogRoutes.PATCH("/variants/:id", variantHandler.Update)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/warehouses", inventoryHandler.CreateWarehouse)
	inventoryRoutes.GET("/warehouses", inventoryHandler.ListWarehouses)
	inventoryRoutes.POST("/stock/receive", inventoryHandler.Receive)
	inventoryRoutes.POST("/stock/issue", inventoryHandler.Issue)
	inventoryRoutes.POST("/stock/adjust", inventoryHandler.Adjust)
	inventoryRoutes.GET("/stock/variant/:id", inventoryHandler.StockByVariant)
	inventoryRoutes.GET("/stock/:id/ledger", inventoryHandler.Ledger)

	bookingRoutes := router.NewDomainGroup("booking", "/booking")
	bookingRoutes.POST("/resources", bookingHandler.CreateResource)
	bookingRoutes.GET("/resources", bookingHandler.ListResources)
	bookingRoutes.GET("/resources/:id/availability", bookingHandler.Availability)
	bookingRoutes.POST("/reservations", bookingHandler.Reserve)
	bookingRoutes.GET("/reservations/:id", bookingHandler.GetReservation)
	bookingRoutes.POST("/reservations/:id/proof-upload", bookingHandler.ProofUploadURL)
	bookingRoutes.POST("/reservations/:id/proof", bookingHandler.SubmitProof)
	bookingRoutes.POST("/reservations/:id/confirm", bookingHandler.Confirm)
	bookingRoutes.DELETE("/reservations/:id", bookingHandler.Cancel)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(inventoryRoutes).
		Register(bookingRoutes).
		Register(systemRoutes)
	r.Setup()

	// Background sweeper releasing expired pending reservations
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go expirySweeper(sweepCtx, bookingService, meterProvider, cfg.Booking.ExpireInterval, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}

// expirySweeper periodically releases pending reservations whose payment
// deadline has passed.
func expirySweeper(ctx context.Context, bookingService *bookingapp.BookingService, mp *telemetry.MeterProvider, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	expiredCounter, err := telemetry.NewCounter(
		mp.Meter("booking"),
		"booking_expired_holds_total",
		"Payment holds released by the expiry sweeper",
		"{reservation}",
	)
	if err != nil {
		log.Warn("failed to create expiry counter", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := bookingService.ExpirePending(ctx, time.Now())
			if err != nil {
				log.Warn("reservation expiry sweep failed", zap.Error(err))
				continue
			}
			if released > 0 {
				log.Info("released expired reservations", zap.Int("count", released))
				if expiredCounter != nil {
					expiredCounter.Add(ctx, int64(released))
				}
			}
		}
	}
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["db_pool"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

func shutdownWithTimeout(fn func(context.Context) error, log *zap.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn("shutdown error", zap.String("component", name), zap.Error(err))
	}
}
