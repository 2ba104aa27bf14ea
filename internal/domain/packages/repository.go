package packages

import (
	"context"

	"stockroom/internal/domain"
)

// Repository defines package persistence. Items and notes are loaded
// together with the package header.
type Repository interface {
	domain.CatalogRepository[*Package]

	// GetByCustomer retrieves the customer's live packages with
	// items and notes.
	GetByCustomer(ctx context.Context, customerID int64) ([]*Package, error)

	// AddItem inserts a package line.
	AddItem(ctx context.Context, packageID int64, it Item) error

	// RemoveItem deletes the line for (packageID, sku).
	// NotFound when no such line exists.
	RemoveItem(ctx context.Context, packageID, sku int64) error

	// AddNote inserts a note.
	AddNote(ctx context.Context, packageID int64, n Note) error

	// RemoveNote deletes a note by id. NotFound when missing.
	RemoveNote(ctx context.Context, packageID int64, noteID string) error
}
