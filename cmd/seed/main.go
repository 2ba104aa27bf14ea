// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"stockroom/internal/domain/cart"
	"stockroom/internal/domain/catalogs/branch"
	"stockroom/internal/domain/catalogs/catalog"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/domain/catalogs/customer"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/packages"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/postgres/catalog_repo"
	"stockroom/internal/infrastructure/storage/postgres/order_repo"
	"stockroom/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seed(ctx, txManager, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seed(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	branchRepo := catalog_repo.NewBranchRepo(txm)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txm)
	catalogRepo := catalog_repo.NewCatalogRepo(txm)
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	itemRepo := catalog_repo.NewItemRepo(txm)
	customerRepo := catalog_repo.NewCustomerRepo(txm)
	packageRepo := catalog_repo.NewPackageRepo(txm)
	cartRepo := order_repo.NewCartRepo(txm)
	batch := postgres.NewBatchInserter(txm)

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		hq := branch.NewBranch("Main Branch")
		if err := branchRepo.Create(ctx, hq); err != nil {
			return err
		}

		warehouses := make([]*warehouse.Warehouse, 0, 2)
		for _, row := range []struct {
			name     string
			location string
			capacity int64
		}{
			{"Central Warehouse", "12 Dock Rd", 100000},
			{"North Warehouse", "4 Mill Ln", 25000},
		} {
			w := warehouse.NewWarehouse(row.name)
			loc := row.location
			w.Location = &loc
			w.Capacity = row.capacity
			w.BranchID = &hq.ID
			if err := warehouseRepo.Create(ctx, w); err != nil {
				return err
			}
			warehouses = append(warehouses, w)
		}

		retail := catalog.NewCatalog("Retail Catalog")
		if err := catalogRepo.Create(ctx, retail); err != nil {
			return err
		}

		electronics := category.NewCategory("Electronics")
		if err := categoryRepo.Create(ctx, electronics); err != nil {
			return err
		}

		acme := supplier.NewSupplier("Acme Wholesale")
		acmeEmail := "sales@acme-wholesale.example"
		acme.ContactEmail = &acmeEmail
		if err := supplierRepo.Create(ctx, acme); err != nil {
			return err
		}

		items := make([]*item.Item, 0, 3)
		for _, row := range []struct {
			name  string
			cost  string
			price string
		}{
			{"Router RX-200", "45.00", "89.99"},
			{"Set-top Box S9", "30.00", "59.99"},
			{"Mesh Extender M1", "18.50", "39.99"},
		} {
			it := item.NewItem(row.name, decimal.RequireFromString(row.price))
			it.UnitCost = decimal.RequireFromString(row.cost)
			it.CategoryID = &electronics.ID
			if err := itemRepo.Create(ctx, it); err != nil {
				return err
			}
			items = append(items, it)
		}

		// Stock lines go in via COPY: one bulk write instead of
		// per-line upserts.
		now := time.Now().UTC()
		rows := make([][]any, 0, len(items)*len(warehouses))
		for _, w := range warehouses {
			for i, it := range items {
				rows = append(rows, []any{w.ID, it.SKU(), int64(100 * (i + 1)), now})
			}
		}
		if _, err := batch.CopyFromSlice(ctx, "stock_lines",
			[]string{"warehouse_id", "sku", "quantity", "updated_at"}, rows); err != nil {
			return err
		}

		cust := customer.NewCustomer("Dana", "Whitfield", "dana.whitfield@example.com")
		if err := customerRepo.Create(ctx, cust); err != nil {
			return err
		}

		pkg := packages.NewPackage(cust.ID, "Home Internet Bundle", now.AddDate(0, -2, 0), 24)
		pkg.MonthlyFee = decimal.RequireFromString("49.99")
		pkg.SetupFee = decimal.RequireFromString("99.00")
		if err := packageRepo.Create(ctx, pkg); err != nil {
			return err
		}
		if err := packageRepo.AddItem(ctx, pkg.ID, packages.Item{
			SKU:       items[0].SKU(),
			Quantity:  1,
			UnitPrice: items[0].ListPrice,
		}); err != nil {
			return err
		}

		c := cart.NewCart(cust.ID)
		if err := cartRepo.Create(ctx, c); err != nil {
			return err
		}
		if err := cartRepo.UpsertLine(ctx, c.ID, items[1].SKU(), 2); err != nil {
			return err
		}

		log.Infow("seeded demo data",
			"warehouses", len(warehouses),
			"items", len(items),
			"stock_lines", len(rows),
		)
		return nil
	})
}
