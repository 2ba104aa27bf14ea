// Package catalog provides the merchandising Catalog that groups
// categories for publication.
package catalog

import (
	"context"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// Catalog is a published grouping of categories.
type Catalog struct {
	entity.Catalog

	Description *string `db:"description" json:"description,omitempty"`
	Active      bool    `db:"is_active" json:"isActive"`
}

// NewCatalog creates an active Catalog with the given name.
func NewCatalog(name string) *Catalog {
	return &Catalog{
		Catalog: entity.NewCatalog(name),
		Active:  true,
	}
}

// Validate implements entity.Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository defines the interface for Catalog persistence.
type Repository interface {
	domain.CatalogRepository[*Catalog]
}

// Service provides business logic for the Catalog aggregate.
type Service struct {
	*domain.CatalogService[*Catalog]
}

// NewService creates a Catalog service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Catalog]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "catalog",
		}),
	}
}
