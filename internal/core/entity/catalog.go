package entity

import (
	"context"

	"stockroom/internal/core/apperror"
)

// Catalog is the base type for reference data aggregates.
// Examples: Item, Warehouse, Branch, Supplier, Category, Customer.
type Catalog struct {
	BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with the given name.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
