package order

import (
	"context"
)

// ListFilter narrows order listings.
type ListFilter struct {
	CustomerID *int64
	Status     *Status
	Limit      int
	Offset     int
}

// Repository defines order persistence. The orders table carries a
// unique index on cart_id; a second insert for the same cart fails
// with a Duplicate error.
type Repository interface {
	// Create inserts the order and its items, assigning the id.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with items. NotFound when missing.
	GetByID(ctx context.Context, id int64) (*Order, error)

	// GetByCartID retrieves the order materialized from a cart.
	GetByCartID(ctx context.Context, cartID string) (*Order, error)

	// GetForUpdate retrieves an order row-locked for a status
	// transition. Must run inside a transaction; items are not loaded.
	GetForUpdate(ctx context.Context, id int64) (*Order, error)

	// UpdateStatus persists a status flip.
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// ReplaceItems swaps the order's items and total.
	ReplaceItems(ctx context.Context, o *Order) error

	// List retrieves orders without item details.
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
}
