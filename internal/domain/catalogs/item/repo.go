package item

import (
	"context"

	"stockroom/internal/domain"
)

// Repository defines the interface for Item persistence.
type Repository interface {
	domain.CatalogRepository[*Item]

	// GetActive retrieves a live item that is flagged active.
	// Inactive or soft-deleted items return NotFound.
	GetActive(ctx context.Context, id int64) (*Item, error)

	// ListByCategory retrieves live items of a category.
	ListByCategory(ctx context.Context, categoryID int64, filter domain.ListFilter) (domain.ListResult[*Item], error)
}
