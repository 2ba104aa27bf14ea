package item

import (
	"context"

	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// Service provides business logic for the Item catalog.
// Composition with domain.CatalogService covers common CRUD.
type Service struct {
	*domain.CatalogService[*Item]
	repo Repository
}

// NewService creates an Item service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "item",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// GetActive retrieves an item that can be sold.
func (s *Service) GetActive(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetActive(ctx, id)
}

// ListByCategory lists live items of a category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64, filter domain.ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.ListByCategory(ctx, categoryID, filter)
}
