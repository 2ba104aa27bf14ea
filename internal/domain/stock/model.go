// Package stock provides the stock ledger: the single authority over
// on-hand quantities per (warehouse, SKU). All stock mutation anywhere
// in the system funnels through Debit and Credit.
package stock

import (
	"time"
)

// Line is one ledger row: the on-hand quantity of a SKU in a warehouse.
// An absent row means quantity zero. Quantity never goes negative.
type Line struct {
	WarehouseID int64     `db:"warehouse_id" json:"warehouseId"`
	SKU         int64     `db:"sku" json:"sku"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
