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

	catalogapp "github.com/retailcore/backend/internal/application/catalog"
	"github.com/retailcore/backend/internal/application/importer"
	inventoryapp "github.com/retailcore/backend/internal/application/inventory"
	partnerapp "github.com/retailcore/backend/internal/application/partner"
	tradeapp "github.com/retailcore/backend/internal/application/trade"
	treasuryapp "github.com/retailcore/backend/internal/application/treasury"
	"github.com/retailcore/backend/internal/infrastructure/cache"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/retailcore/backend/internal/infrastructure/logger"
	"github.com/retailcore/backend/internal/infrastructure/persistence"
	"github.com/retailcore/backend/internal/infrastructure/telemetry"
	"github.com/retailcore/backend/internal/interfaces/http/handler"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
	"github.com/retailcore/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

// maxBodySize bounds import payloads, the largest requests this API accepts
const maxBodySize = 8 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Retail Core Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	balanceCache, err := cache.NewRedisBalanceCache(
		cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.BalanceTTL, log,
	)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := balanceCache.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Balance cache connected successfully")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	variantRepo := persistence.NewGormItemVariantRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	invoiceRepo := persistence.NewGormSaleInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	safeRepo := persistence.NewGormSafeRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	transferRepo := persistence.NewGormCashTransferRepository(db.DB)

	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Application services
	catalogService := catalogapp.NewCatalogService(itemRepo, variantRepo, invoiceRepo, purchaseRepo, log)
	partnerService := partnerapp.NewPartnerService(customerRepo, supplierRepo, invoiceRepo, purchaseRepo, log)
	stockService := inventoryapp.NewStockService(inventoryScope, log)
	salesService := tradeapp.NewSalesService(tradeScope, balanceCache, log)
	purchaseService := tradeapp.NewPurchaseService(tradeScope, balanceCache, log)
	returnService := tradeapp.NewReturnService(tradeScope, balanceCache, log)
	treasuryService := treasuryapp.NewTreasuryService(
		safeRepo, voucherRepo, transferRepo, invoiceRepo, purchaseRepo, balanceCache, log,
	)
	importService := importer.NewImportService(
		salesService, treasuryService, stockService,
		variantRepo, locationRepo, safeRepo, customerRepo, log,
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(maxBodySize))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Liveness endpoint outside API versioning, checked by the orchestrator
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(version)).
		Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewPartnerHandler(partnerService)).
		Register(handler.NewStockHandler(stockService)).
		Register(handler.NewSalesHandler(salesService)).
		Register(handler.NewPurchaseHandler(purchaseService)).
		Register(handler.NewReturnHandler(returnService)).
		Register(handler.NewTreasuryHandler(treasuryService)).
		Register(handler.NewImportHandler(importService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports whether the database connection is alive
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
