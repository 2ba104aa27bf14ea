// Package item provides the Item catalog. An item's integer primary key
// doubles as its SKU: every stock line, cart line and order line refers
// to items by this id.
package item

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
)

// Item represents a sellable good.
type Item struct {
	entity.Catalog

	// Description is free-form merchandising text
	Description *string `db:"description" json:"description,omitempty"`

	// UnitCost is the purchase cost per unit
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// ListPrice is the selling price captured into orders
	ListPrice types.Money `db:"list_price" json:"listPrice"`

	// Discount is a flat per-unit discount applied at quote time
	Discount types.Money `db:"discount" json:"discount"`

	// AdditionalTax is a flat per-unit tax surcharge
	AdditionalTax types.Money `db:"additional_tax" json:"additionalTax"`

	// MarginGain is the target margin over unit cost
	MarginGain types.Money `db:"margin_gain" json:"marginGain"`

	// Active indicates the item can be added to carts
	Active bool `db:"is_active" json:"isActive"`

	// CategoryID references the owning category
	CategoryID *int64 `db:"category_id" json:"categoryId,omitempty"`
}

// SKU returns the item's stock-keeping identifier.
func (i *Item) SKU() int64 {
	return i.ID
}

// NewItem creates an active Item with the given name and list price.
func NewItem(name string, listPrice types.Money) *Item {
	return &Item{
		Catalog:   entity.NewCatalog(name),
		ListPrice: listPrice,
		Active:    true,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}
	if i.ListPrice.IsNegative() {
		return apperror.NewValidation("list price cannot be negative").
			WithDetail("field", "listPrice")
	}
	if i.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}
	if i.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}
	return nil
}

// EffectivePrice returns list price minus discount plus tax, floored at zero.
func (i *Item) EffectivePrice() types.Money {
	price := i.ListPrice.Sub(i.Discount).Add(i.AdditionalTax)
	return types.RoundMoney(types.FloorZero(price))
}
