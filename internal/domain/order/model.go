// Package order materializes carts into orders and drives the order
// state machine. An order is the durable record of what a cart held at
// materialization time, priced then, never re-priced implicitly.
package order

import (
	"time"

	"stockroom/internal/core/types"
)

// Status is the order lifecycle state.
type Status string

const (
	// StatusPending is the state every order is born in.
	StatusPending Status = "pending"

	// StatusFulfilled is terminal. No transition leaves it.
	StatusFulfilled Status = "fulfilled"
)

// Item is one order line with the unit price captured at
// materialization.
type Item struct {
	OrderID   int64       `db:"order_id" json:"-"`
	SKU       int64       `db:"sku" json:"sku"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// Order is a materialized cart.
type Order struct {
	ID         int64       `db:"id" json:"id"`
	CustomerID int64       `db:"customer_id" json:"customerId"`
	CartID     string      `db:"cart_id" json:"cartId"`
	Status     Status      `db:"status" json:"status"`
	Total      types.Money `db:"total" json:"total"`
	Items      []Item      `db:"-" json:"items"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}

// IsFulfilled reports whether the order reached the terminal state.
func (o *Order) IsFulfilled() bool {
	return o.Status == StatusFulfilled
}
