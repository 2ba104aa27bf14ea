package cart

import (
	"context"
)

// Repository defines cart persistence.
type Repository interface {
	// Create inserts an empty cart.
	Create(ctx context.Context, c *Cart) error

	// GetByID retrieves a cart with its lines. NotFound when missing.
	GetByID(ctx context.Context, cartID string) (*Cart, error)

	// GetByCustomer retrieves the customer's carts, newest first.
	GetByCustomer(ctx context.Context, customerID int64) ([]*Cart, error)

	// UpsertLine creates or replaces the line for (cartID, sku).
	UpsertLine(ctx context.Context, cartID string, sku, quantity int64) error

	// DeleteLine removes the line for (cartID, sku).
	DeleteLine(ctx context.Context, cartID string, sku int64) error

	// ClearLines removes all lines of a cart.
	ClearLines(ctx context.Context, cartID string) error

	// Delete removes the cart and its lines.
	Delete(ctx context.Context, cartID string) error

	// Touch stamps the cart's updated_at.
	Touch(ctx context.Context, cartID string) error

	// UnmaterializedCartIDs returns ids of non-empty carts no order
	// refers to. Empty carts cannot materialize and are excluded.
	UnmaterializedCartIDs(ctx context.Context) ([]string, error)
}
