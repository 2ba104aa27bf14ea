// Package branch provides the Branch catalog. Branches are the business
// units warehouses report to.
package branch

import (
	"context"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// Branch represents an operating business unit.
type Branch struct {
	entity.Catalog

	City         *string `db:"city" json:"city,omitempty"`
	Region       *string `db:"region" json:"region,omitempty"`
	ContactEmail *string `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone *string `db:"contact_phone" json:"contactPhone,omitempty"`
}

// NewBranch creates a Branch with the given name.
func NewBranch(name string) *Branch {
	return &Branch{Catalog: entity.NewCatalog(name)}
}

// Validate implements entity.Validatable.
func (b *Branch) Validate(ctx context.Context) error {
	return b.Catalog.Validate(ctx)
}

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]
}

// Service provides business logic for the Branch catalog.
type Service struct {
	*domain.CatalogService[*Branch]
}

// NewService creates a Branch service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "branch",
		}),
	}
}
