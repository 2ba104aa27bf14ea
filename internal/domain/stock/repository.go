package stock

import (
	"context"
)

// Repository defines operations for the stock ledger.
// Mutations are expected to run inside a caller-managed transaction.
type Repository interface {
	// GetLine returns the ledger row for warehouse+sku.
	// Returns NotFound when no row exists.
	GetLine(ctx context.Context, warehouseID, sku int64) (Line, error)

	// GetLineForUpdate returns the row with a FOR UPDATE lock, so
	// concurrent writers on the same (warehouse, sku) serialize.
	GetLineForUpdate(ctx context.Context, warehouseID, sku int64) (Line, error)

	// SetQuantity persists the new quantity for an existing row.
	SetQuantity(ctx context.Context, warehouseID, sku, quantity int64) error

	// UpsertAdd creates the row at zero if absent, then adds delta.
	UpsertAdd(ctx context.Context, warehouseID, sku, delta int64) error

	// Attach registers a SKU in a warehouse with zero quantity.
	// Already-attached pairs return a Duplicate error.
	Attach(ctx context.Context, warehouseID, sku int64) error

	// Remove deletes the ledger row.
	Remove(ctx context.Context, warehouseID, sku int64) error

	// LinesByWarehouse returns all rows of a warehouse.
	LinesByWarehouse(ctx context.Context, warehouseID int64) ([]Line, error)

	// LinesBySKU returns rows for a SKU across warehouses.
	LinesBySKU(ctx context.Context, sku int64) ([]Line, error)

	// TotalInWarehouse sums quantities across a warehouse.
	TotalInWarehouse(ctx context.Context, warehouseID int64) (int64, error)
}
