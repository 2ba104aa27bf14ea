// Package warehouse provides the Warehouse catalog.
// Warehouses are the physical locations stock lines are kept against.
package warehouse

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.Catalog

	// Location is the physical address or site label
	Location *string `db:"location" json:"location,omitempty"`

	// Capacity is advisory headroom in stock units. Zero means
	// unbounded. The ledger never enforces it on credits.
	Capacity int64 `db:"capacity" json:"capacity"`

	// BranchID references the operating branch
	BranchID *int64 `db:"branch_id" json:"branchId,omitempty"`

	// IsActive indicates the warehouse is operational
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewWarehouse creates an active Warehouse with the given name.
func NewWarehouse(name string) *Warehouse {
	return &Warehouse{
		Catalog:  entity.NewCatalog(name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (w *Warehouse) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}
	if w.Capacity < 0 {
		return apperror.NewValidation("capacity cannot be negative").
			WithDetail("field", "capacity")
	}
	return nil
}

// CanHoldStock reports whether the warehouse participates in stock
// operations.
func (w *Warehouse) CanHoldStock() bool {
	return w.IsActive && !w.DeletionMark
}
