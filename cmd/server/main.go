// Package main is the entry point for the stockroom API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockroom/internal/app"
	"stockroom/internal/domain/cart"
	"stockroom/internal/domain/catalogs/branch"
	"stockroom/internal/domain/catalogs/catalog"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/domain/catalogs/customer"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/order"
	"stockroom/internal/domain/packages"
	"stockroom/internal/domain/stock"
	"stockroom/internal/domain/transfer"
	v1 "stockroom/internal/infrastructure/http/v1"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/postgres/catalog_repo"
	"stockroom/internal/infrastructure/storage/postgres/order_repo"
	"stockroom/internal/infrastructure/storage/postgres/stock_repo"
	"stockroom/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockroom server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	audit, err := postgres.NewAuditTrail(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit trail", "error", err)
	}
	defer audit.Close()

	// --- Repositories ---
	itemRepo := catalog_repo.NewItemRepo(txManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	branchRepo := catalog_repo.NewBranchRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	catalogRepo := catalog_repo.NewCatalogRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	packageRepo := catalog_repo.NewPackageRepo(txManager)
	stockRepo := stock_repo.NewStockRepo(txManager)
	cartRepo := order_repo.NewCartRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)

	// --- Domain services ---
	itemSvc := item.NewService(itemRepo, txManager)
	warehouseSvc := warehouse.NewService(warehouseRepo, stockRepo, txManager)
	branchSvc := branch.NewService(branchRepo, txManager)
	supplierSvc := supplier.NewService(supplierRepo, txManager)
	catalogSvc := catalog.NewService(catalogRepo, txManager)
	categorySvc := category.NewService(categoryRepo, txManager)
	customerSvc := customer.NewService(customerRepo, txManager)
	packagesSvc := packages.NewService(packageRepo, itemRepo, txManager)

	ledger := stock.NewLedger(stockRepo, txManager)
	coordinator := transfer.NewCoordinator(ledger, warehouseRepo, txManager, audit)
	cartSvc := cart.NewService(cartRepo, itemRepo, txManager)
	orderSvc := order.NewService(orderRepo, cartSvc, itemRepo, txManager, audit)

	facade := app.New(app.Config{
		Ledger:     ledger,
		Transfers:  coordinator,
		Carts:      cartSvc,
		Orders:     orderSvc,
		Packages:   packagesSvc,
		Warehouses: warehouseSvc,
		Lifecycles: map[string]app.Lifecycle{
			"item":      itemSvc,
			"warehouse": warehouseSvc,
			"branch":    branchSvc,
			"supplier":  supplierSvc,
			"catalog":   catalogSvc,
			"category":  categorySvc,
			"customer":  customerSvc,
			"package":   packagesSvc,
		},
	})

	// --- Router ---
	router := v1.NewRouter(v1.Services{
		App:        facade,
		Items:      itemSvc,
		Warehouses: warehouseSvc,
		Branches:   branchSvc,
		Suppliers:  supplierSvc,
		Catalogs:   catalogSvc,
		Categories: categorySvc,
		Customers:  customerSvc,
		Packages:   packagesSvc,
	}, log)

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
