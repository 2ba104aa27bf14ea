// Package cart provides customer shopping carts. Carts are working
// documents: mutable line sets that orders are materialized from.
package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item is one cart line.
type Item struct {
	CartID   string `db:"cart_id" json:"-"`
	SKU      int64  `db:"sku" json:"sku"`
	Quantity int64  `db:"quantity" json:"quantity"`
}

// Cart holds a customer's items before an order exists.
type Cart struct {
	ID         string    `db:"id" json:"id"`
	CustomerID int64     `db:"customer_id" json:"customerId"`
	Items      []Item    `db:"-" json:"items"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCart creates an empty cart for a customer.
func NewCart(customerID int64) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Line is one read-only snapshot line.
type Line struct {
	SKU      int64 `json:"sku"`
	Quantity int64 `json:"quantity"`
}

// Snapshot is the point-in-time read of a cart consumed by order
// materialization. Later cart edits do not affect a taken snapshot.
type Snapshot struct {
	CartID     string `json:"cartId"`
	CustomerID int64  `json:"customerId"`
	Lines      []Line `json:"lines"`
}

// IsEmpty reports whether the snapshot carries no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
