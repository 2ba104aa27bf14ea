// Package category provides the Category catalog items are grouped by.
package category

import (
	"context"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// Category groups items for merchandising.
type Category struct {
	entity.Catalog

	Description *string `db:"description" json:"description,omitempty"`
	Active      bool    `db:"is_active" json:"isActive"`
}

// NewCategory creates an active Category with the given name.
func NewCategory(name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(name),
		Active:  true,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]
}

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
}

// NewService creates a Category service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "category",
		}),
	}
}
