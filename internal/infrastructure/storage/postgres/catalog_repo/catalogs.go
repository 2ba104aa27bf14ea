package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/domain/catalogs/branch"
	"stockroom/internal/domain/catalogs/catalog"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/domain/catalogs/customer"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/infrastructure/storage/postgres"
)

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseRepo[*warehouse.Warehouse]
}

var _ warehouse.Repository = (*WarehouseRepo)(nil)

// NewWarehouseRepo creates the Warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseRepo: NewBaseRepo(
			"warehouses",
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			"name",
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
			txm,
		),
	}
}

// CatalogRepo implements catalog.Repository.
type CatalogRepo struct {
	*BaseRepo[*catalog.Catalog]
}

var _ catalog.Repository = (*CatalogRepo)(nil)

// NewCatalogRepo creates the Catalog repository.
func NewCatalogRepo(txm *postgres.TxManager) *CatalogRepo {
	return &CatalogRepo{
		BaseRepo: NewBaseRepo(
			"catalogs",
			postgres.ExtractDBColumns[catalog.Catalog](),
			"name",
			func() *catalog.Catalog { return &catalog.Catalog{} },
			txm,
		),
	}
}

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseRepo[*branch.Branch]
}

var _ branch.Repository = (*BranchRepo)(nil)

// NewBranchRepo creates the Branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{
		BaseRepo: NewBaseRepo(
			"branches",
			postgres.ExtractDBColumns[branch.Branch](),
			"name",
			func() *branch.Branch { return &branch.Branch{} },
			txm,
		),
	}
}

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseRepo[*supplier.Supplier]
}

var _ supplier.Repository = (*SupplierRepo)(nil)

// NewSupplierRepo creates the Supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseRepo: NewBaseRepo(
			"suppliers",
			postgres.ExtractDBColumns[supplier.Supplier](),
			"name",
			func() *supplier.Supplier { return &supplier.Supplier{} },
			txm,
		),
	}
}

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates the Category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: NewBaseRepo(
			"categories",
			postgres.ExtractDBColumns[category.Category](),
			"name",
			func() *category.Category { return &category.Category{} },
			txm,
		),
	}
}

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseRepo[*customer.Customer]
}

var _ customer.Repository = (*CustomerRepo)(nil)

// NewCustomerRepo creates the Customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseRepo: NewBaseRepo(
			"customers",
			postgres.ExtractDBColumns[customer.Customer](),
			"last_name",
			func() *customer.Customer { return &customer.Customer{} },
			txm,
		),
	}
}

// GetByEmail retrieves a live customer by email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
