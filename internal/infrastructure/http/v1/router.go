// Package v1 wires the HTTP surface: middleware chain, health and
// metrics endpoints, and the /api/v1 route groups.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockroom/internal/app"
	"stockroom/internal/domain/catalogs/branch"
	"stockroom/internal/domain/catalogs/catalog"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/domain/catalogs/customer"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/packages"
	"stockroom/internal/infrastructure/http/v1/handlers"
	"stockroom/internal/infrastructure/http/v1/middleware"
	"stockroom/pkg/logger"
)

// Services bundles everything the router needs.
type Services struct {
	App        *app.Service
	Items      *item.Service
	Warehouses *warehouse.Service
	Branches   *branch.Service
	Suppliers  *supplier.Service
	Catalogs   *catalog.Service
	Categories *category.Service
	Customers  *customer.Service
	Packages   *packages.Service
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(svcs Services, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Trace())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	itemH := handlers.NewItemHandler(svcs.Items)
	warehouseH := handlers.NewCatalogHandler[*warehouse.Warehouse](svcs.Warehouses,
		func() *warehouse.Warehouse { return &warehouse.Warehouse{} })
	branchH := handlers.NewCatalogHandler[*branch.Branch](svcs.Branches,
		func() *branch.Branch { return &branch.Branch{} })
	supplierH := handlers.NewCatalogHandler[*supplier.Supplier](svcs.Suppliers,
		func() *supplier.Supplier { return &supplier.Supplier{} })
	catalogH := handlers.NewCatalogHandler[*catalog.Catalog](svcs.Catalogs,
		func() *catalog.Catalog { return &catalog.Catalog{} })
	categoryH := handlers.NewCatalogHandler[*category.Category](svcs.Categories,
		func() *category.Category { return &category.Category{} })
	customerH := handlers.NewCustomerHandler(svcs.Customers)
	packageH := handlers.NewCatalogHandler[*packages.Package](svcs.Packages,
		func() *packages.Package { return &packages.Package{} })

	stockH := handlers.NewStockHandler(svcs.App)
	cartH := handlers.NewCartHandler(svcs.App)
	orderH := handlers.NewOrderHandler(svcs.App)
	packageExtH := handlers.NewPackageHandler(svcs.App, svcs.Packages)

	items := api.Group("/items")
	itemH.Register(items)
	items.GET("/:id/active", itemH.GetActive)
	items.GET("/:id/availability", stockH.TotalAvailability)

	warehouses := api.Group("/warehouses")
	warehouseH.Register(warehouses)
	warehouses.GET("/:id/stock", stockH.WarehouseStock)
	warehouses.POST("/:id/stock", stockH.Attach)
	warehouses.GET("/:id/stock/:sku", stockH.Quantity)
	warehouses.DELETE("/:id/stock/:sku", stockH.Detach)
	warehouses.POST("/:id/stock/credit", stockH.Credit)
	warehouses.POST("/:id/stock/debit", stockH.Debit)
	warehouses.GET("/:id/utilization", stockH.Utilization)

	api.POST("/stock/transfers", stockH.Transfer)

	branchH.Register(api.Group("/branches"))
	supplierH.Register(api.Group("/suppliers"))

	catalogH.Register(api.Group("/catalogs"))

	categories := api.Group("/categories")
	categoryH.Register(categories)
	categories.GET("/:id/items", itemH.ByCategory)

	customers := api.Group("/customers")
	customers.GET("/by-email", customerH.ByEmail)
	customerH.Register(customers)
	customers.GET("/:id/carts", cartH.ByCustomer)
	customers.GET("/:id/packages", packageExtH.ByCustomer)

	carts := api.Group("/carts")
	carts.POST("", cartH.Create)
	carts.GET("/:id", cartH.Get)
	carts.DELETE("/:id", cartH.Delete)
	carts.POST("/:id/items", cartH.AddItem)
	carts.POST("/:id/items/remove", cartH.RemoveItem)
	carts.POST("/:id/clear", cartH.Clear)
	carts.GET("/:id/total", cartH.Total)
	carts.GET("/:id/snapshot", cartH.Snapshot)
	carts.GET("/:id/order", orderH.ByCart)

	orders := api.Group("/orders")
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.POST("/sync", orderH.Sync)
	orders.GET("/:id", orderH.Get)
	orders.POST("/:id/fulfill", orderH.Fulfill)
	orders.POST("/:id/refresh", orderH.Refresh)

	pkgs := api.Group("/packages")
	packageH.Register(pkgs)
	pkgs.GET("/:id/contract", packageExtH.Contract)
	pkgs.POST("/:id/items", packageExtH.AddItem)
	pkgs.DELETE("/:id/items/:sku", packageExtH.RemoveItem)
	pkgs.POST("/:id/notes", packageExtH.AddNote)
	pkgs.DELETE("/:id/notes/:noteId", packageExtH.RemoveNote)

	return r
}
